package settings

import (
	"bytes"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.OutDisplay != ":9" {
		t.Fatalf("want default out display :9, got %q", s.OutDisplay)
	}
	if len(s.SubcommandArgv) != 1 || s.SubcommandArgv[0] != "xterm" {
		t.Fatalf("want subcommand argv [xterm], got %v", s.SubcommandArgv)
	}
}

func TestParseInteractiveFlag(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"-i", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.Interactive {
		t.Fatal("want interactive mode enabled")
	}
}

func TestParseInteractiveLongFlag(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"-interactive", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.Interactive {
		t.Fatal("want --interactive to enable interactive mode")
	}
}

func TestParseOutOverride(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"-D", ":5", "-d", ":0", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.OutDisplay != ":5" || s.InDisplay != ":0" {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestParseLogPathFlag(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"-o", "/tmp/trace.log", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.LogPath != "/tmp/trace.log" {
		t.Fatalf("want LogPath set via -o, got %q", s.LogPath)
	}
}

func TestParseDenyExtensionsShortAndLongAlias(t *testing.T) {
	var out bytes.Buffer
	short, err := Parse([]string{"-e", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse -e: %v", err)
	}
	if !short.DenyExtensions {
		t.Fatal("want -e to set DenyExtensions")
	}

	long, err := Parse([]string{"-denyextensions", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse -denyextensions: %v", err)
	}
	if !long.DenyExtensions {
		t.Fatal("want -denyextensions to set DenyExtensions")
	}
}

func TestParseAmbientFlags(t *testing.T) {
	var out bytes.Buffer
	s, err := Parse([]string{"-w", "-v", "-p", "-u", "xterm"}, &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.ReadWriteDebug || !s.Verbose || !s.PrefetchAtoms || !s.Unbuffered {
		t.Fatalf("unexpected settings: %+v", s)
	}
}
