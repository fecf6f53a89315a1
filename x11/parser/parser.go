// Package parser is the top-level driver (C6): given a connection's
// buffered bytes and its current phase, it identifies each message,
// invokes x11/wire to decode it, advances the buffer by exactly the bytes
// consumed, and updates the correlation state in x11/xconn and x11/atoms.
// It never re-orders or drops bytes; NeedMoreData simply means "call again
// once more bytes have arrived".
package parser

import (
	"fmt"
	"time"

	"github.com/xtracego/xtrace/x11/align"
	"github.com/xtracego/xtrace/x11/atoms"
	"github.com/xtracego/xtrace/x11/wire"
	"github.com/xtracego/xtrace/x11/xconn"
)

// Direction is which peer a parsed message originated from.
type Direction int

const (
	ClientToServer Direction = iota
	ServerToClient
)

// Message is one fully-parsed, narrated protocol message, ready for
// rendering.
type Message struct {
	Direction   Direction
	ConnID      int
	Sequence    uint16
	Decoded     wire.Decoded
	TimestampMS int64 // wall-clock ms when this message was parsed
	ConnStartMS int64 // conn.StartTimeMS, carried so rendering can subtract it under -r
}

// newMessage stamps m with the connection's identity and the current time,
// so every call site only has to supply what's unique to the message.
func newMessage(conn *xconn.Connection, dir Direction, seq uint16, decoded wire.Decoded) Message {
	return Message{
		Direction:   dir,
		ConnID:      conn.ID,
		Sequence:    seq,
		Decoded:     decoded,
		TimestampMS: time.Now().UnixMilli(),
		ConnStartMS: conn.StartTimeMS,
	}
}

// ParseClient consumes as many complete messages as client_buf currently
// holds and returns them in wire order. A short trailing fragment is left
// untouched for the next call.
func ParseClient(conn *xconn.Connection) ([]Message, error) {
	var out []Message
	for {
		buf := conn.ClientBuf.PeekAll()
		if len(buf) == 0 {
			return out, nil
		}
		if conn.Phase == xconn.Authentication {
			// payload is unspecified by X11 during authentication; nothing
			// is parsed here, and the I/O loop forwards these bytes verbatim.
			return out, nil
		}
		if !conn.ClientSetupSeen {
			msg, n, err := parseClientSetup(conn, buf)
			if err == wire.ErrNeedMoreData {
				return out, nil
			}
			if err != nil {
				return out, fmt.Errorf("parser: client setup: %w", err)
			}
			conn.ClientBuf.Advance(n)
			out = append(out, msg)
			continue
		}
		if conn.Order == nil {
			return out, fmt.Errorf("parser: client request parsed before byte order is known")
		}
		hdr, err := wire.PeekRequestHeader(buf, conn.Order, conn.BigRequests)
		if err == wire.ErrNeedMoreData {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("parser: client request header: %w", err)
		}
		if hdr.Length > len(buf) {
			return out, nil
		}
		decoded, err := wire.DecodeRequest(buf[:hdr.Length], conn.Order, hdr)
		if err != nil {
			return out, fmt.Errorf("parser: client request body: %w", err)
		}
		conn.Sequence++
		seq := conn.Sequence
		conn.RecordPendingOpcode(seq, hdr.Opcode)
		stashRequest(conn, seq, hdr.Opcode, decoded)
		conn.ClientBuf.Advance(hdr.Length)
		out = append(out, newMessage(conn, ClientToServer, seq, decoded))
	}
}

// ParseServer consumes as many complete messages as server_buf currently
// holds: the connection-setup reply first, then a stream of
// reply/event/error messages once the connection is OPEN.
func ParseServer(conn *xconn.Connection) ([]Message, error) {
	var out []Message
	for {
		buf := conn.ServerBuf.PeekAll()
		if len(buf) == 0 {
			return out, nil
		}
		if conn.Phase == xconn.Authentication && conn.ServerSetupSeen {
			return out, nil
		}
		if !conn.ServerSetupSeen {
			msg, n, err := parseServerSetupReply(conn, buf)
			if err == wire.ErrNeedMoreData {
				return out, nil
			}
			if err != nil {
				return out, fmt.Errorf("parser: server setup reply: %w", err)
			}
			conn.ServerBuf.Advance(n)
			out = append(out, msg)
			continue
		}
		if conn.Phase != xconn.Open {
			return out, nil
		}
		if len(buf) < 8 {
			return out, nil
		}
		code := buf[0]
		if code != 1 && len(buf) < 32 {
			return out, nil // errors and events are always 32 bytes
		}
		switch {
		case code == 0:
			decoded, err := wire.DecodeError(buf, conn.Order, buf[1])
			if err != nil {
				return out, fmt.Errorf("parser: server error: %w", err)
			}
			seq := align.Uint16(buf[2:4], conn.Order)
			conn.ServerBuf.Advance(32)
			out = append(out, newMessage(conn, ServerToClient, seq, decoded))

		case code == 1:
			seq := align.Uint16(buf[2:4], conn.Order)
			length, err := wire.PeekReplyLength(buf, conn.Order)
			if err == wire.ErrNeedMoreData {
				return out, nil
			}
			if err != nil {
				return out, fmt.Errorf("parser: server reply header: %w", err)
			}
			if length > len(buf) {
				return out, nil
			}
			opcode, _ := conn.TakePendingOpcode(seq)
			if opcode == 98 && conn.DenyExtensions {
				// present (offset 8), major-opcode (9), first-event (10),
				// first-error (11): zeroing all four makes the extension
				// look entirely absent, not just "present=false".
				conn.ServerBuf.Patch(8, []byte{0, 0, 0, 0})
				buf = conn.ServerBuf.Peek(length)
			}
			decoded, err := wire.DecodeReply(buf[:length], conn.Order, opcode)
			if err != nil {
				return out, fmt.Errorf("parser: server reply body: %w", err)
			}
			resolveReply(conn, seq, opcode, decoded)
			conn.ServerBuf.Advance(length)
			out = append(out, newMessage(conn, ServerToClient, seq, decoded))

		default:
			decoded, err := wire.DecodeEvent(buf, conn.Order, code)
			if err != nil {
				return out, fmt.Errorf("parser: server event: %w", err)
			}
			var seq uint16
			if code&0x7f != 11 { // KeymapNotify has no sequence field
				seq = align.Uint16(buf[2:4], conn.Order)
			}
			conn.ServerBuf.Advance(32)
			out = append(out, newMessage(conn, ServerToClient, seq, decoded))
		}
	}
}

func parseClientSetup(conn *xconn.Connection, buf []byte) (Message, int, error) {
	if len(buf) < 12 {
		return Message{}, 0, wire.ErrNeedMoreData
	}
	order, swapped, err := align.Order(buf[0])
	if err != nil {
		return Message{}, 0, err
	}
	authNameLen := int(align.Uint16(buf[8:10], order))
	authDataLen := int(align.Uint16(buf[10:12], order))
	total := 12 + align.Pad(authNameLen) + align.Pad(authDataLen)
	if len(buf) < total {
		return Message{}, 0, wire.ErrNeedMoreData
	}
	authName := string(buf[12 : 12+authNameLen])

	conn.Order = order
	conn.ByteSwap = swapped
	conn.ClientSetupSeen = true
	conn.Sequence++ // the implicit setup counts as the connection's first request

	decoded := wire.Decoded{Name: "ClientSetup", Fields: []wire.FieldValue{
		{Name: "byte-order", Text: string(buf[0])},
		{Name: "protocol-major-version", Text: fmt.Sprintf("%d", align.Uint16(buf[2:4], order))},
		{Name: "protocol-minor-version", Text: fmt.Sprintf("%d", align.Uint16(buf[4:6], order))},
		{Name: "authorization-protocol-name", Text: authName},
		{Name: "authorization-protocol-data", Text: fmt.Sprintf("<%d bytes>", authDataLen)},
	}}
	return newMessage(conn, ClientToServer, conn.Sequence, decoded), total, nil
}

func parseServerSetupReply(conn *xconn.Connection, buf []byte) (Message, int, error) {
	if len(buf) < 8 {
		return Message{}, 0, wire.ErrNeedMoreData
	}
	status := buf[0]
	length := int(align.Uint16(buf[6:8], conn.Order))
	total := 8 + length*4
	if len(buf) < total {
		return Message{}, 0, wire.ErrNeedMoreData
	}

	var name string
	var next xconn.Phase
	switch status {
	case 0:
		name, next = "SetupFailed", xconn.Failed
	case 1:
		name, next = "SetupSuccess", xconn.Open
	case 2:
		name, next = "SetupAuthenticate", xconn.Authentication
	default:
		name, next = fmt.Sprintf("SetupUnknownStatus(%d)", status), xconn.Failed
	}
	if err := conn.Advance(next); err != nil {
		return Message{}, 0, err
	}
	conn.ServerSetupSeen = true

	decoded := wire.Decoded{Name: name, Fields: []wire.FieldValue{
		{Name: "protocol-major-version", Text: fmt.Sprintf("%d", align.Uint16(buf[2:4], conn.Order))},
		{Name: "protocol-minor-version", Text: fmt.Sprintf("%d", align.Uint16(buf[4:6], conn.Order))},
	}}
	return newMessage(conn, ServerToClient, 0, decoded), total, nil
}

// stashRequest records correlation state for the four opcodes whose reply
// needs to be paired back with request input: InternAtom, GetAtomName,
// QueryExtension, ListFontsWithInfo.
func stashRequest(conn *xconn.Connection, seq uint16, opcode byte, decoded wire.Decoded) {
	switch opcode {
	case 16: // InternAtom
		atoms.StashInternAtom(conn, seq, fieldText(decoded, "name"))
	case 17: // GetAtomName
		if atom, ok := fieldRawUint32(decoded, "atom"); ok {
			atoms.StashGetAtomName(conn, seq, atom)
		}
	case 98: // QueryExtension
		atoms.StashQueryExtension(conn, seq, fieldText(decoded, "name"))
	case 52: // ListFontsWithInfo
		atoms.StashListFontsWithInfo(conn, seq, fieldText(decoded, "pattern"))
	}
}

// resolveReply consumes any correlation stash matching seq/opcode, once
// the reply body has been decoded.
func resolveReply(conn *xconn.Connection, seq uint16, opcode byte, decoded wire.Decoded) {
	switch opcode {
	case 16:
		if atom, ok := fieldRawUint32(decoded, "atom"); ok {
			atoms.ResolveInternAtomReply(conn, seq, atom)
		}
	case 17:
		atoms.ResolveGetAtomNameReply(conn, seq, fieldText(decoded, "name"))
	case 52:
		atoms.ResolveListFontsWithInfoReply(conn, seq, fieldText(decoded, "name-len") == "0")
	case 98:
		present := fieldText(decoded, "present") == "true"
		atoms.ResolveQueryExtensionReply(conn, seq, present)
	}
}

func fieldText(decoded wire.Decoded, name string) string {
	for _, f := range decoded.Fields {
		if f.Name == name {
			return f.Text
		}
	}
	return ""
}

func fieldRawUint32(decoded wire.Decoded, name string) (uint32, bool) {
	for _, f := range decoded.Fields {
		if f.Name == name {
			var v uint32
			_, err := fmt.Sscanf(f.Text, "%d", &v)
			return v, err == nil
		}
	}
	return 0, false
}
