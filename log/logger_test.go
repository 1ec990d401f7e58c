package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSinkCapturesLeveledOutput(t *testing.T) {
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	var buf bytes.Buffer
	SetSink(&buf)

	l := New("logtest")
	l.Noticef("frame %d done", 3)
	l.Debugf("suppressed at the default verbosity")

	out := buf.String()
	if !strings.Contains(out, "frame 3 done") {
		t.Fatalf("expected notice message in sink output; got %q", out)
	}
	if strings.Contains(out, "suppressed") {
		t.Fatalf("expected debug message to be filtered; got %q", out)
	}
}

func TestLevelSurvivesSinkChange(t *testing.T) {
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	SetLevel(Debug)

	var buf bytes.Buffer
	SetSink(&buf)
	New("logtest").Debugf("visible after raising verbosity")

	if !strings.Contains(buf.String(), "visible after raising verbosity") {
		t.Fatalf("expected the raised verbosity to survive the sink change; got %q", buf.String())
	}
}
