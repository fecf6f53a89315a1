package wire

import (
	"encoding/binary"
	"testing"
)

func TestPeekRequestHeaderShort(t *testing.T) {
	_, err := PeekRequestHeader([]byte{1, 2}, binary.BigEndian, false)
	if err != ErrNeedMoreData {
		t.Fatalf("want ErrNeedMoreData, got %v", err)
	}
}

func TestPeekRequestHeaderRejectsZeroLengthWithoutBigRequests(t *testing.T) {
	buf := []byte{16, 0, 0, 0}
	if _, err := PeekRequestHeader(buf, binary.BigEndian, false); err == nil {
		t.Fatal("want error for zero-length request without BIG-REQUESTS")
	}
}

func TestPeekRequestHeaderBigRequests(t *testing.T) {
	buf := make([]byte, 8)
	buf[0] = 16
	binary.BigEndian.PutUint16(buf[2:4], 0)
	binary.BigEndian.PutUint32(buf[4:8], 70000)
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.Length != 70000*4 || hdr.HeaderSz != 8 {
		t.Fatalf("unexpected header: %+v", hdr)
	}
}

func TestDecodeInternAtomRequest(t *testing.T) {
	name := "WM_PROTOCOLS"
	total := 8 + len(name)
	padded := (total + 3) &^ 3
	buf := make([]byte, padded)
	buf[0] = 16 // InternAtom
	buf[1] = 0 // only-if-exists
	binary.BigEndian.PutUint16(buf[2:4], uint16(padded/4))
	binary.BigEndian.PutUint16(buf[4:6], uint16(len(name)))
	copy(buf[8:], name)

	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	decoded, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name != "InternAtom" {
		t.Fatalf("want InternAtom, got %s", decoded.Name)
	}
	found := false
	for _, f := range decoded.Fields {
		if f.Name == "name" && f.Text == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("name field not decoded correctly: %+v", decoded.Fields)
	}
}

func TestDecodePolyPointEmptyList(t *testing.T) {
	buf := make([]byte, 12)
	buf[0] = 64
	binary.BigEndian.PutUint16(buf[2:4], 3)
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	decoded, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, f := range decoded.Fields {
		if f.Name == "points" && f.Text != "<0 elements>" {
			t.Fatalf("want empty points list, got %s", f.Text)
		}
	}
}

func TestDecodeKeymapNotifyEvent(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 11
	decoded, err := DecodeEvent(buf, binary.BigEndian, 11)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name != "KeymapNotify" {
		t.Fatalf("want KeymapNotify, got %s", decoded.Name)
	}
}

func TestDecodeChangePropertyFormatField(t *testing.T) {
	buf := make([]byte, 24)
	buf[0] = 18
	binary.BigEndian.PutUint16(buf[2:4], 6)
	buf[16] = 8 // format
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	decoded, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, f := range decoded.Fields {
		if f.Name == "format" && f.Text != "8" {
			t.Fatalf("want format 8, got %s", f.Text)
		}
	}
}

func TestDecodeChangePropertyRejectsIllegalFormat(t *testing.T) {
	buf := make([]byte, 24)
	buf[0] = 18
	binary.BigEndian.PutUint16(buf[2:4], 6)
	buf[16] = 7 // not one of 8/16/32
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if _, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr); err == nil {
		t.Fatal("want a hard parse error for format=7")
	}
}

func TestDecodeCreateWindowRejectsShortLength(t *testing.T) {
	buf := make([]byte, 8)
	buf[0] = 1
	binary.BigEndian.PutUint16(buf[2:4], 2) // declares 8 bytes total, shorter than CreateWindow's fixed prefix
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if _, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr); err == nil {
		t.Fatal("want a hard parse error, not a panic, for a too-short CreateWindow")
	}
}

func TestDecodeUnknownOpcodeFallsBack(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 250
	binary.BigEndian.PutUint16(buf[2:4], 1)
	hdr, err := PeekRequestHeader(buf, binary.BigEndian, false)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	decoded, err := DecodeRequest(buf[:hdr.Length], binary.BigEndian, hdr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name != "Unknown(250)" {
		t.Fatalf("want Unknown(250), got %s", decoded.Name)
	}
}
