package trust

import "testing"

type recordingSink struct {
	lines []string
	level MaskLevel
}

func (r *recordingSink) Write(level MaskLevel, line string) {
	r.level = level
	r.lines = append(r.lines, line)
}

func TestLoggerRespectsLevelMask(t *testing.T) {
	sink := &recordingSink{}
	l := New(ErrorMask|WarnMask, sink)

	l.Errorf("e%d", 1)
	l.Warnf("w%d", 2)
	l.Infof("i%d", 3) // masked out
	l.Debugf("d%d", 4) // masked out

	if len(sink.lines) != 2 {
		t.Fatalf("got %d log lines, want 2 (Info/Debug should be masked out): %v", len(sink.lines), sink.lines)
	}
	if sink.lines[0] != "e1" || sink.lines[1] != "w2" {
		t.Fatalf("log lines = %v, want [e1 w2]", sink.lines)
	}
}

func TestLoggerSetLevelChangesWhatPassesThrough(t *testing.T) {
	sink := &recordingSink{}
	l := New(Nothing, sink)

	l.Infof("quiet")
	if len(sink.lines) != 0 {
		t.Fatalf("logger at Nothing level wrote %v, want nothing", sink.lines)
	}

	l.SetLevel(InfoMask)
	l.Infof("loud")
	if len(sink.lines) != 1 || sink.lines[0] != "loud" {
		t.Fatalf("log lines after SetLevel(InfoMask) = %v, want [loud]", sink.lines)
	}
	if l.Level() != InfoMask {
		t.Fatalf("Level() = %v, want InfoMask", l.Level())
	}
}

func TestFatalfAlwaysWritesRegardlessOfLevelAndPanics(t *testing.T) {
	sink := &recordingSink{}
	l := New(Nothing, sink)

	defer func() {
		if recover() == nil {
			t.Fatal("Fatalf should panic")
		}
		if len(sink.lines) != 1 || sink.lines[0] != "boom" {
			t.Fatalf("log lines = %v, want [boom] even though the level mask was Nothing", sink.lines)
		}
	}()
	l.Fatalf("boom")
}

func TestMaskLevelString(t *testing.T) {
	cases := map[MaskLevel]string{
		ErrorMask: "ERROR",
		WarnMask:  "WARN",
		InfoMask:  "INFO",
		DebugMask: "DEBUG",
		StatsMask: "STATS",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("%v.String() = %q, want %q", level, got, want)
		}
	}
}
