package banner

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineContainsDisplays(t *testing.T) {
	line := Line(":0", ":9")
	if !strings.Contains(line, ":0") || !strings.Contains(line, ":9") {
		t.Fatalf("unexpected banner: %q", line)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, ":0", ":9"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("want non-empty banner output")
	}
}
