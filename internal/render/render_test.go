package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xtracego/xtrace/x11/parser"
	"github.com/xtracego/xtrace/x11/wire"
)

func sampleMessage() parser.Message {
	return parser.Message{
		Direction: parser.ClientToServer,
		Sequence:  3,
		Decoded: wire.Decoded{
			Name: "InternAtom",
			Fields: []wire.FieldValue{
				{Name: "name", Text: "PRIMARY"},
			},
		},
	}
}

func TestLineSingleLinePlain(t *testing.T) {
	line := Line(sampleMessage(), Options{Plain: true})
	if !strings.Contains(line, "InternAtom") || !strings.Contains(line, "name=PRIMARY") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestLineMultiline(t *testing.T) {
	line := Line(sampleMessage(), Options{Plain: true, Multiline: true})
	if !strings.Contains(line, "\n    name=PRIMARY") {
		t.Fatalf("want indented field line, got %q", line)
	}
}

func TestWriteAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleMessage(), Options{Plain: true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("want trailing newline")
	}
}

func TestLineVerboseShowsOpcodeAndLength(t *testing.T) {
	m := sampleMessage()
	m.Decoded.Opcode = 16
	m.Decoded.Length = 12
	line := Line(m, Options{Plain: true, Verbose: true})
	if !strings.Contains(line, "opcode=16") || !strings.Contains(line, "length=12") {
		t.Fatalf("want opcode/length in verbose line, got %q", line)
	}
	quiet := Line(m, Options{Plain: true})
	if strings.Contains(quiet, "opcode=") {
		t.Fatalf("want opcode elided without -v, got %q", quiet)
	}
}

func TestLineRelativeTimestamp(t *testing.T) {
	m := sampleMessage()
	m.ConnStartMS = 1000
	m.TimestampMS = 1250
	line := Line(m, Options{Plain: true, RelativeTimestamps: true})
	if !strings.Contains(line, "+250ms") {
		t.Fatalf("want relative elapsed +250ms, got %q", line)
	}
}
