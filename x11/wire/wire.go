// Package wire implements the table-driven fixed-prefix and variable-suffix
// decoders (schema-driven: every decision comes from a *schema.RequestEntry,
// *schema.ReplyEntry, *schema.EventEntry, or *schema.ErrorEntry, never from a
// switch over types). It has no notion of a connection or a socket; it only
// turns byte slices already known to be complete into Decoded values.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/xtracego/xtrace/x11/align"
	"github.com/xtracego/xtrace/x11/schema"
)

// ErrNeedMoreData is returned by the Peek* functions when buf does not yet
// hold a complete message. Callers treat it as "come back once more bytes
// have arrived", never as a protocol violation.
var ErrNeedMoreData = errors.New("wire: need more data")

// FieldValue is one decoded, display-ready member of a message.
type FieldValue struct {
	Name string
	Text string
}

// Decoded is a fully-parsed message: its schema name (or a synthesized
// "Unknown(opcode)" name when no table entry claimed it) plus its ordered
// field values. Opcode and Length are always populated but only rendered
// under -v/--verbose; every other field is elided by default already by
// virtue of only being in this slice when the schema names it.
type Decoded struct {
	Name   string
	Fields []FieldValue
	Opcode byte
	Length int
}

// RequestHeader is the result of peeking a request's fixed length framing,
// before any field decoding happens.
type RequestHeader struct {
	Opcode   byte
	Minor    byte
	Length   int // total request length in bytes, header included
	HeaderSz int // 4 normally, 8 once BIG-REQUESTS extends the length field
}

// PeekRequestHeader reads just enough of buf to know the request's total
// byte length. bigRequests gates whether a zero 16-bit length field is
// legal (it only is once QueryExtension("BIG-REQUESTS") has been answered
// present by the server on this connection).
func PeekRequestHeader(buf []byte, order binary.ByteOrder, bigRequests bool) (RequestHeader, error) {
	if len(buf) < 4 {
		return RequestHeader{}, ErrNeedMoreData
	}
	h := RequestHeader{Opcode: buf[0], Minor: buf[1]}
	length16 := align.Uint16(buf[2:4], order)
	if length16 != 0 {
		h.Length = int(length16) * 4
		h.HeaderSz = 4
		return h, nil
	}
	if !bigRequests {
		return RequestHeader{}, fmt.Errorf("wire: peek request header: zero length field without BIG-REQUESTS active")
	}
	if len(buf) < 8 {
		return RequestHeader{}, ErrNeedMoreData
	}
	length32 := align.Uint32(buf[4:8], order)
	h.Length = int(length32) * 4
	h.HeaderSz = 8
	return h, nil
}

// PeekReplyLength reads a reply's total byte length from its 32-byte fixed
// header: 32 bytes plus reply_length (CARD32 at offset 4) 4-byte units.
func PeekReplyLength(buf []byte, order binary.ByteOrder) (int, error) {
	if len(buf) < 8 {
		return 0, ErrNeedMoreData
	}
	replyLength := align.Uint32(buf[4:8], order)
	return 32 + int(replyLength)*4, nil
}

// DecodeRequest decodes a complete request message (buf[:hdr.Length]) against
// its schema entry. An opcode with no table entry decodes to a bare "Unknown"
// value carrying no fields — the message still forwards byte-for-byte, it
// just isn't narrated field by field.
func DecodeRequest(buf []byte, order binary.ByteOrder, hdr RequestHeader) (Decoded, error) {
	entry, ok := schema.Requests[hdr.Opcode]
	if !ok {
		return Decoded{Name: fmt.Sprintf("Unknown(%d)", hdr.Opcode), Opcode: hdr.Opcode, Length: hdr.Length}, nil
	}
	if len(buf) < entry.MinSize {
		return Decoded{}, fmt.Errorf("wire: decode request %s: buffer shorter than minimum size %d", entry.Name, entry.MinSize)
	}
	fields, raw, err := decodeFields(buf, order, entry.Fields)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode request %s: %w", entry.Name, err)
	}
	suffix, err := decodeSuffix(buf, order, entry.Suffix, raw, entry.MinSize)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode request %s: %w", entry.Name, err)
	}
	return Decoded{Name: entry.Name, Fields: append(fields, suffix...), Opcode: hdr.Opcode, Length: hdr.Length}, nil
}

// DecodeReply decodes a complete reply message against the ReplyEntry
// registered for the opcode of the request that produced it (the caller
// supplies that opcode via the correlation store, not the wire itself).
func DecodeReply(buf []byte, order binary.ByteOrder, requestOpcode byte) (Decoded, error) {
	entry, ok := schema.Replies[requestOpcode]
	if !ok {
		return Decoded{Name: "Reply", Opcode: requestOpcode, Length: len(buf)}, nil
	}
	fields, raw, err := decodeFields(buf, order, entry.Fields)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode reply %s: %w", entry.Name, err)
	}
	suffix, err := decodeSuffix(buf, order, entry.Suffix, raw, 32)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode reply %s: %w", entry.Name, err)
	}
	return Decoded{Name: entry.Name + "Reply", Fields: append(fields, suffix...), Opcode: requestOpcode, Length: len(buf)}, nil
}

// DecodeEvent decodes a fixed 32-byte event. KeymapNotify (code 11) has no
// sequence number; every other event's sequence lives at bytes 2-3 and is
// reported separately by the caller, not as a Field here.
func DecodeEvent(buf []byte, order binary.ByteOrder, code byte) (Decoded, error) {
	entry, ok := schema.Events[code&0x7f] // bit 7 marks "generated by SendEvent"
	if !ok {
		return Decoded{Name: fmt.Sprintf("UnknownEvent(%d)", code), Opcode: code, Length: 32}, nil
	}
	if len(buf) < 32 {
		return Decoded{}, fmt.Errorf("wire: decode event %s: message shorter than 32 bytes", entry.Name)
	}
	fields, _, err := decodeFields(buf, order, entry.Fields)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode event %s: %w", entry.Name, err)
	}
	return Decoded{Name: entry.Name, Fields: fields, Opcode: code, Length: 32}, nil
}

// DecodeError decodes a fixed 32-byte error.
func DecodeError(buf []byte, order binary.ByteOrder, code byte) (Decoded, error) {
	entry, ok := schema.Errors[code]
	if !ok {
		return Decoded{Name: fmt.Sprintf("UnknownError(%d)", code), Opcode: code, Length: 32}, nil
	}
	if len(buf) < 32 {
		return Decoded{}, fmt.Errorf("wire: decode error %s: message shorter than 32 bytes", entry.Name)
	}
	fields, _, err := decodeFields(buf, order, entry.Fields)
	if err != nil {
		return Decoded{}, fmt.Errorf("wire: decode error %s: %w", entry.Name, err)
	}
	return Decoded{Name: entry.Name + "Error", Fields: fields, Opcode: code, Length: 32}, nil
}

func decodeFields(buf []byte, order binary.ByteOrder, fields []schema.Field) ([]FieldValue, map[string]uint32, error) {
	out := make([]FieldValue, 0, len(fields))
	raw := make(map[string]uint32, len(fields))
	for _, f := range fields {
		var v uint32
		var text string
		switch f.Kind {
		case schema.KindU8:
			v = uint32(buf[f.Offset])
			text = fmt.Sprintf("%d", v)
		case schema.KindI8:
			v = uint32(buf[f.Offset])
			text = fmt.Sprintf("%d", int8(buf[f.Offset]))
		case schema.KindBool8:
			v = uint32(buf[f.Offset])
			text = fmt.Sprintf("%t", buf[f.Offset] != 0)
		case schema.KindU16:
			v = uint32(align.Uint16(buf[f.Offset:], order))
			text = fmt.Sprintf("%d", v)
		case schema.KindI16:
			v = uint32(uint16(align.Int16(buf[f.Offset:], order)))
			text = fmt.Sprintf("%d", align.Int16(buf[f.Offset:], order))
		case schema.KindU32:
			v = align.Uint32(buf[f.Offset:], order)
			text = fmt.Sprintf("%d", v)
		case schema.KindI32:
			v = uint32(align.Int32(buf[f.Offset:], order))
			text = fmt.Sprintf("%d", align.Int32(buf[f.Offset:], order))
		}
		name, ok := f.Enum.Name(v)
		if ok {
			text = name
		} else if f.Bitmask != nil {
			text = bitmaskText(v, f.Bitmask)
		} else if f.Enum != nil && f.Enum.Strict {
			return nil, nil, fmt.Errorf("field %q: value %d is not one of the legal values", f.Name, v)
		}
		raw[f.Name] = v
		out = append(out, FieldValue{Name: f.Name, Text: text})
	}
	return out, raw, nil
}

func bitmaskText(v uint32, table *schema.EnumTable) string {
	if v == 0 {
		return "0"
	}
	s := ""
	for bit := uint32(0); bit < 32; bit++ {
		mask := uint32(1) << bit
		if v&mask == 0 {
			continue
		}
		name, ok := table.Name(bit)
		if !ok {
			name = fmt.Sprintf("bit%d", bit)
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	return s
}

func decodeSuffix(buf []byte, order binary.ByteOrder, parts []schema.SuffixPart, raw map[string]uint32, start int) ([]FieldValue, error) {
	var out []FieldValue
	offset := start
	for _, p := range parts {
		switch p.Kind {
		case schema.SuffixString8:
			n := int(raw[p.LenField])
			if offset+n > len(buf) {
				return nil, fmt.Errorf("string8 %q: truncated", p.Name)
			}
			out = append(out, FieldValue{Name: p.Name, Text: string(buf[offset : offset+n])})
			offset += align.Pad(n)

		case schema.SuffixString16:
			n := int(raw[p.LenField])
			if offset+n*2 > len(buf) {
				return nil, fmt.Errorf("string16 %q: truncated", p.Name)
			}
			runes := make([]rune, n)
			for i := 0; i < n; i++ {
				runes[i] = rune(align.Uint16(buf[offset+i*2:], order))
			}
			out = append(out, FieldValue{Name: p.Name, Text: string(runes)})
			offset += align.Pad(n * 2)

		case schema.SuffixBytes:
			n := len(buf) - offset
			if p.LenField != "" {
				n = int(raw[p.LenField])
			}
			if offset+n > len(buf) {
				return nil, fmt.Errorf("bytes %q: truncated", p.Name)
			}
			out = append(out, FieldValue{Name: p.Name, Text: fmt.Sprintf("<%d bytes>", n)})
			offset += align.Pad(n)

		case schema.SuffixListOf:
			n := 0
			switch {
			case p.LenField == "":
				elemSize := p.ElemSize
				if elemSize == 0 {
					elemSize = 1
				}
				n = (len(buf) - offset) / elemSize
			case p.ByteLen:
				n = int(raw[p.LenField]) / max(p.ElemSize, 1)
			default:
				n = int(raw[p.LenField])
			}
			byteLen := n * max(p.ElemSize, 1)
			if offset+byteLen > len(buf) {
				return nil, fmt.Errorf("list %q: truncated (want %d elems)", p.Name, n)
			}
			out = append(out, FieldValue{Name: p.Name, Text: fmt.Sprintf("<%d elements>", n)})
			offset += align.Pad(byteLen)

		case schema.SuffixListOfValue:
			mask := raw[p.MaskField]
			count := 0
			var names []string
			for _, vs := range p.Values {
				if mask&vs.Bit == 0 {
					continue
				}
				if offset+4 > len(buf) {
					return nil, fmt.Errorf("value-list %q: truncated", p.Name)
				}
				v := align.Uint32(buf[offset:], order)
				text := fmt.Sprintf("%d", v)
				if name, ok := vs.Enum.Name(v); ok {
					text = name
				} else if vs.Bitmask != nil {
					text = bitmaskText(v, vs.Bitmask)
				}
				names = append(names, vs.Name+"="+text)
				offset += 4
				count++
			}
			_ = count
			out = append(out, FieldValue{Name: p.Name, Text: fmt.Sprintf("{%s}", join(names, ", "))})

		case schema.SuffixTextItem8, schema.SuffixTextItem16:
			// TEXTITEMs are a run of variable-shaped items (font-shift or
			// string items) terminated by a zero length byte; narrated as
			// an opaque span since callers rarely need per-item detail.
			n := len(buf) - offset
			out = append(out, FieldValue{Name: p.Name, Text: fmt.Sprintf("<%d bytes of text items>", n)})
			offset = len(buf)
		}
	}
	return out, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func join(items []string, sep string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}
