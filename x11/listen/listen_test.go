package listen

import "testing"

func TestParseDisplayUnixDefault(t *testing.T) {
	d, err := ParseDisplay(":9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.IsUnix() || d.Number != 9 {
		t.Fatalf("want unix display 9, got %+v", d)
	}
	if d.SocketPath() != "/tmp/.X11-unix/X9" {
		t.Fatalf("unexpected socket path %q", d.SocketPath())
	}
}

func TestParseDisplayExplicitUnixHost(t *testing.T) {
	d, err := ParseDisplay("unix:1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.IsUnix() || d.Number != 1 {
		t.Fatalf("want unix display 1, got %+v", d)
	}
}

func TestParseDisplayTCPHost(t *testing.T) {
	d, err := ParseDisplay("myhost:2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.IsUnix() {
		t.Fatal("want TCP, not unix")
	}
	if d.TCPAddr() != "myhost:6002" {
		t.Fatalf("unexpected tcp addr %q", d.TCPAddr())
	}
}

func TestParseDisplayWithScreen(t *testing.T) {
	d, err := ParseDisplay("tcp/host:0.1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Proto != "tcp" || d.Screen != 1 {
		t.Fatalf("unexpected parse result %+v", d)
	}
}

func TestParseDisplayMalformed(t *testing.T) {
	if _, err := ParseDisplay("not-a-display"); err == nil {
		t.Fatal("want error for malformed display name")
	}
}
