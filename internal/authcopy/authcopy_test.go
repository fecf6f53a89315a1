package authcopy

import "testing"

func TestEncodeExtractStringRoundTrip(t *testing.T) {
	s := encodeString([]byte("hello"))
	got, err := extractString(s)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("want hello, got %q", got)
	}
}

func TestExtractStringTruncated(t *testing.T) {
	if _, err := extractString([]byte{0, 5, 'a'}); err == nil {
		t.Fatal("want error for truncated string")
	}
}

func TestParseEntriesRoundTrip(t *testing.T) {
	e := entry{family: familyAFLocal, addr: []byte("myhost"), disp: []byte("0"), authMeth: []byte("MIT-MAGIC-COOKIE-1"), authData: []byte{1, 2, 3, 4}}
	raw := encodeEntry(e)
	entries, err := parseEntries(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if string(got.addr) != "myhost" || string(got.disp) != "0" || string(got.authMeth) != "MIT-MAGIC-COOKIE-1" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}
