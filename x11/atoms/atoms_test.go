package atoms

import (
	"testing"

	"github.com/xtracego/xtrace/x11/xconn"
)

func TestSeedPredefined(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	SeedPredefined(conn, nil)
	if conn.InternedAtoms[1] != "PRIMARY" {
		t.Fatalf("want PRIMARY at atom 1, got %q", conn.InternedAtoms[1])
	}
	if len(conn.InternedAtoms) != len(Predefined) {
		t.Fatalf("want %d seeded atoms, got %d", len(Predefined), len(conn.InternedAtoms))
	}
}

func TestSeedPredefinedWithPrefetch(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	SeedPredefined(conn, func() map[uint32]string {
		return map[uint32]string{69: "_NET_WM_NAME"}
	})
	if conn.InternedAtoms[69] != "_NET_WM_NAME" {
		t.Fatalf("want prefetched atom, got %q", conn.InternedAtoms[69])
	}
}

func TestInternAtomRoundTrip(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	StashInternAtom(conn, 1, "PRIMARY")
	name, ok := ResolveInternAtomReply(conn, 1, 1)
	if !ok || name != "PRIMARY" {
		t.Fatalf("want resolved PRIMARY, got %q ok=%v", name, ok)
	}
	if conn.InternedAtoms[1] != "PRIMARY" {
		t.Fatalf("want interned atom recorded, got %q", conn.InternedAtoms[1])
	}
	if _, ok := conn.Consume(1); ok {
		t.Fatal("stash should be consumed exactly once")
	}
}

func TestGetAtomNameRoundTrip(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	StashGetAtomName(conn, 2, 1)
	atom, ok := ResolveGetAtomNameReply(conn, 2, "PRIMARY")
	if !ok || atom != 1 {
		t.Fatalf("want resolved atom 1, got %d ok=%v", atom, ok)
	}
	if conn.InternedAtoms[1] != "PRIMARY" {
		t.Fatalf("want interned atom recorded, got %q", conn.InternedAtoms[1])
	}
	if _, ok := conn.Consume(2); ok {
		t.Fatal("stash should be consumed exactly once")
	}
}

func TestListFontsWithInfoOnlyConsumesOnTerminalReply(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	StashListFontsWithInfo(conn, 7, "*")

	if _, ok := ResolveListFontsWithInfoReply(conn, 7, false); ok {
		t.Fatal("a non-terminal per-font reply must not consume the stash")
	}
	if _, ok := conn.Consume(7); !ok {
		t.Fatal("stash should still be present after a non-terminal reply")
	}
	StashListFontsWithInfo(conn, 7, "*") // put it back; Consume above removed it for the check

	pattern, ok := ResolveListFontsWithInfoReply(conn, 7, true)
	if !ok || pattern != "*" {
		t.Fatalf("want resolved pattern *, got %q ok=%v", pattern, ok)
	}
	if _, ok := conn.Consume(7); ok {
		t.Fatal("stash should be consumed exactly once the terminal reply arrives")
	}
}

func TestQueryExtensionActivatesBigRequests(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	StashQueryExtension(conn, 5, "BIG-REQUESTS")
	_, isBig := ResolveQueryExtensionReply(conn, 5, true)
	if !isBig || !conn.BigRequests {
		t.Fatalf("want BIG-REQUESTS activated, got isBig=%v conn.BigRequests=%v", isBig, conn.BigRequests)
	}
}

func TestQueryExtensionNotPresentDoesNotActivate(t *testing.T) {
	conn := xconn.New(1, "client", 0)
	StashQueryExtension(conn, 5, "BIG-REQUESTS")
	_, isBig := ResolveQueryExtensionReply(conn, 5, false)
	if isBig || conn.BigRequests {
		t.Fatal("want BIG-REQUESTS not activated when present=0")
	}
}
