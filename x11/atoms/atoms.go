// Package atoms owns the predefined X11 atom table and the correlation
// logic that ties an InternAtom/GetAtomName/QueryExtension/
// ListFontsWithInfo reply back to the request that caused it. The actual
// stash/consume/intern storage lives on *xconn.Connection (each connection
// owns its own cache); this package supplies the seed data and the
// decision logic so xconn stays a pure data record.
package atoms

import "github.com/xtracego/xtrace/x11/xconn"

// PredefinedMax is the highest atom id seeded at startup from the
// X11-standard predefined name table, before any client-driven interning.
const PredefinedMax = 68

// Predefined holds the core protocol's predefined atom names, 1-indexed to
// match their wire atom ids.
var Predefined = map[uint32]string{
	1:  "PRIMARY",
	2:  "SECONDARY",
	3:  "ARC",
	4:  "ATOM",
	5:  "BITMAP",
	6:  "CARDINAL",
	7:  "COLORMAP",
	8:  "CURSOR",
	9:  "CUT_BUFFER0",
	10: "CUT_BUFFER1",
	11: "CUT_BUFFER2",
	12: "CUT_BUFFER3",
	13: "CUT_BUFFER4",
	14: "CUT_BUFFER5",
	15: "CUT_BUFFER6",
	16: "CUT_BUFFER7",
	17: "DRAWABLE",
	18: "FONT",
	19: "INTEGER",
	20: "PIXMAP",
	21: "POINT",
	22: "RECTANGLE",
	23: "RESOURCE_MANAGER",
	24: "RGB_COLOR_MAP",
	25: "RGB_BEST_MAP",
	26: "RGB_BLUE_MAP",
	27: "RGB_DEFAULT_MAP",
	28: "RGB_GRAY_MAP",
	29: "RGB_GREEN_MAP",
	30: "RGB_RED_MAP",
	31: "STRING",
	32: "VISUALID",
	33: "WINDOW",
	34: "WM_COMMAND",
	35: "WM_HINTS",
	36: "WM_CLIENT_MACHINE",
	37: "WM_ICON_NAME",
	38: "WM_ICON_SIZE",
	39: "WM_NAME",
	40: "WM_NORMAL_HINTS",
	41: "WM_SIZE_HINTS",
	42: "WM_ZOOM_HINTS",
	43: "MIN_SPACE",
	44: "NORM_SPACE",
	45: "MAX_SPACE",
	46: "END_SPACE",
	47: "SUPERSCRIPT_X",
	48: "SUPERSCRIPT_Y",
	49: "SUBSCRIPT_X",
	50: "SUBSCRIPT_Y",
	51: "UNDERLINE_POSITION",
	52: "UNDERLINE_THICKNESS",
	53: "STRIKEOUT_ASCENT",
	54: "STRIKEOUT_DESCENT",
	55: "ITALIC_ANGLE",
	56: "X_HEIGHT",
	57: "QUAD_WIDTH",
	58: "WEIGHT",
	59: "POINT_SIZE",
	60: "RESOLUTION",
	61: "COPYRIGHT",
	62: "NOTICE",
	63: "FONT_NAME",
	64: "FAMILY_NAME",
	65: "FULL_NAME",
	66: "CAP_HEIGHT",
	67: "WM_CLASS",
	68: "WM_TRANSIENT_FOR",
}

// PrefetchFunc supplies names for atoms beyond PredefinedMax, from whatever
// mechanism the caller wires up (a saved atom dump, a live query against a
// real display). It is intentionally outside this package's scope.
type PrefetchFunc func() map[uint32]string

// SeedPredefined populates conn's interned-atom cache with the predefined
// table, then optionally extends it with prefetch's results.
func SeedPredefined(conn *xconn.Connection, prefetch PrefetchFunc) {
	for id, name := range Predefined {
		conn.InternAtom(id, name)
	}
	if prefetch == nil {
		return
	}
	for id, name := range prefetch() {
		conn.InternAtom(id, name)
	}
}

// StashInternAtom records that seq asked to intern name, so the reply
// (carrying only the assigned atom id) can be paired back with it.
func StashInternAtom(conn *xconn.Connection, seq uint16, name string) {
	conn.Stash(seq, xconn.StashedRequest{Opcode: 16, Name: name})
}

// StashGetAtomName records that seq asked for the name of atom, so the
// reply (carrying only the name) can be paired back with the id it names.
func StashGetAtomName(conn *xconn.Connection, seq uint16, atom uint32) {
	conn.Stash(seq, xconn.StashedRequest{Opcode: 17, Atom: atom})
}

// StashQueryExtension records the extension name seq queried, so a
// BIG-REQUESTS reply (present=1) can be recognized by name when it comes
// back, and activated on the connection.
func StashQueryExtension(conn *xconn.Connection, seq uint16, name string) {
	conn.Stash(seq, xconn.StashedRequest{Opcode: 98, Name: name})
}

// StashListFontsWithInfo records the font pattern seq queried.
func StashListFontsWithInfo(conn *xconn.Connection, seq uint16, pattern string) {
	conn.Stash(seq, xconn.StashedRequest{Opcode: 52, Name: pattern})
}

// ResolveInternAtomReply consumes the stash for seq and, given the atom id
// the server assigned, records the (id, name) mapping on conn. Returns the
// name and whether a stash existed; a missing stash (unexpected reply,
// stale sequence) is reported, not treated as fatal.
func ResolveInternAtomReply(conn *xconn.Connection, seq uint16, atom uint32) (string, bool) {
	req, ok := conn.Consume(seq)
	if !ok || req.Opcode != 16 {
		return "", false
	}
	conn.InternAtom(atom, req.Name)
	return req.Name, true
}

// ResolveGetAtomNameReply consumes the stash for seq and, given the name
// the server returned, records the (atom, name) mapping on conn — the
// GetAtomName mirror of ResolveInternAtomReply.
func ResolveGetAtomNameReply(conn *xconn.Connection, seq uint16, name string) (uint32, bool) {
	req, ok := conn.Consume(seq)
	if !ok || req.Opcode != 17 {
		return 0, false
	}
	conn.InternAtom(req.Atom, name)
	return req.Atom, true
}

// ResolveListFontsWithInfoReply consumes the stash for seq once its
// terminal reply (name-len 0) arrives. The run of per-font replies sharing
// seq in between must not consume the stash early, since more replies for
// the same sequence are still to come.
func ResolveListFontsWithInfoReply(conn *xconn.Connection, seq uint16, terminal bool) (string, bool) {
	if !terminal {
		return "", false
	}
	req, ok := conn.Consume(seq)
	if !ok || req.Opcode != 52 {
		return "", false
	}
	return req.Name, true
}

// ResolveQueryExtensionReply consumes the stash for seq and reports whether
// the queried extension was BIG-REQUESTS and the server answered present.
func ResolveQueryExtensionReply(conn *xconn.Connection, seq uint16, present bool) (name string, isBigRequests bool) {
	req, ok := conn.Consume(seq)
	if !ok || req.Opcode != 98 {
		return "", false
	}
	if req.Name == "BIG-REQUESTS" && present {
		conn.BigRequests = true
	}
	return req.Name, req.Name == "BIG-REQUESTS" && present
}
