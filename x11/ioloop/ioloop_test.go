package ioloop

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/xtracego/xtrace/x11/xconn"
)

func TestFdSetRoundTrip(t *testing.T) {
	var set unix.FdSet
	fdSet(&set, 3)
	fdSet(&set, 70)
	if !fdIsSet(&set, 3) || !fdIsSet(&set, 70) {
		t.Fatal("want both fds marked set")
	}
	if fdIsSet(&set, 4) {
		t.Fatal("fd 4 should not be set")
	}
}

func TestFdOfRejectsNonSyscallConn(t *testing.T) {
	if _, err := fdOf(42); err == nil {
		t.Fatal("want error for a value with no SyscallConn method")
	}
}

func newTestClient() *client {
	return &client{
		toServer: endpoint{fd: 10, buf: xconn.NewRingBuffer(64)},
		toClient: endpoint{fd: 11, buf: xconn.NewRingBuffer(64)},
	}
}

func TestArmClientWritesGoToTheirOwnFd(t *testing.T) {
	c := newTestClient()
	c.toClient.buf.Write([]byte("request"))
	c.toServer.buf.Write([]byte("reply"))

	var readSet, writeSet unix.FdSet
	armClient(c, &readSet, &writeSet, false, 0)

	if !fdIsSet(&writeSet, c.toClient.fd) {
		t.Fatal("want toClient.fd armed for write (client-request bytes queued to the server)")
	}
	if !fdIsSet(&writeSet, c.toServer.fd) {
		t.Fatal("want toServer.fd armed for write (reply bytes queued to the client)")
	}
}

func TestArmClientInteractiveGatesOnlyServerBoundWrites(t *testing.T) {
	c := newTestClient()
	c.toClient.buf.Write([]byte("request"))
	c.toServer.buf.Write([]byte("reply"))

	var readSet, writeSet unix.FdSet
	armClient(c, &readSet, &writeSet, true, 0)

	if fdIsSet(&writeSet, c.toClient.fd) {
		t.Fatal("want toClient.fd (server-bound write) held back when allowSent is 0")
	}
	if !fdIsSet(&writeSet, c.toServer.fd) {
		t.Fatal("want toServer.fd (client-bound write) never gated by interactive mode")
	}
}

func TestArmClientInteractiveReleasesOnAllowance(t *testing.T) {
	c := newTestClient()
	c.toClient.buf.Write([]byte("request"))

	var readSet, writeSet unix.FdSet
	armClient(c, &readSet, &writeSet, true, 1)

	if !fdIsSet(&writeSet, c.toClient.fd) {
		t.Fatal("want toClient.fd armed once allowSent releases it")
	}
}

func TestForwardParsedLeavesTrailingFragmentForNextCall(t *testing.T) {
	src := xconn.NewRingBuffer(64)
	peer := &endpoint{buf: xconn.NewRingBuffer(64)}

	// Two 4-byte "messages" arrive, but only the first one has been fully
	// consumed (simulated by Advance'ing past it) by the time forwardParsed
	// runs; the second is a trailing fragment still waiting on more bytes.
	before := []byte("AAAABBBB")
	src.Write(before)
	src.Advance(4)

	forwardParsed(before, src, peer, false)

	if got := string(peer.buf.Peek(peer.buf.Len())); got != "AAAA" {
		t.Fatalf("want only the fully-parsed message forwarded, got %q", got)
	}
	if src.Len() != 4 {
		t.Fatalf("want the unparsed fragment still in src, got %d bytes", src.Len())
	}
	if got := string(src.Peek(src.Len())); got != "BBBB" {
		t.Fatalf("want unparsed fragment preserved verbatim, got %q", got)
	}
}

func TestForwardParsedNothingConsumedForwardsNothing(t *testing.T) {
	src := xconn.NewRingBuffer(64)
	peer := &endpoint{buf: xconn.NewRingBuffer(64)}

	before := []byte("PARTIAL")
	src.Write(before)
	// No Advance: the parser found nothing it could fully decode yet.

	forwardParsed(before, src, peer, false)

	if peer.buf.Len() != 0 {
		t.Fatalf("want nothing forwarded while a message is still incomplete, got %d bytes", peer.buf.Len())
	}
	if src.Len() != len(before) {
		t.Fatalf("want src untouched, got %d bytes", src.Len())
	}
}

func TestForwardParsedAuthenticationForwardsEverythingVerbatim(t *testing.T) {
	src := xconn.NewRingBuffer(64)
	peer := &endpoint{buf: xconn.NewRingBuffer(64)}

	before := []byte("rawauthbytes")
	src.Write(before)
	// The parser never touches src during authentication, so src.Len()
	// still equals len(before) here.

	forwardParsed(before, src, peer, true)

	if got := string(peer.buf.Peek(peer.buf.Len())); got != "rawauthbytes" {
		t.Fatalf("want every buffered byte forwarded verbatim, got %q", got)
	}
	if src.Len() != 0 {
		t.Fatalf("want src drained after verbatim forwarding, got %d bytes", src.Len())
	}
}

func TestDebugfNoopWithoutCallback(t *testing.T) {
	l := &Loop{}
	l.debugf("conn %d: read %d bytes", 1, 4) // must not panic with opt.Debug == nil
}

func TestDebugfInvokesCallback(t *testing.T) {
	var got string
	l := &Loop{opt: Options{Debug: func(line string) { got = line }}}
	l.debugf("conn %d: read %d bytes", 1, 4)
	if got != "conn 1: read 4 bytes" {
		t.Fatalf("want formatted debug line, got %q", got)
	}
}
