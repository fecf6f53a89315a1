// Package align implements the X11 wire alignment and endian-conditional
// scalar helpers shared by every other x11 package. It has no dependencies
// on connection state or schema tables: everything here is a pure function
// of its arguments.
package align

import "encoding/binary"

// Pad returns n rounded up to the next multiple of 4, the "aligned unit"
// X11 pads every structure to.
func Pad(n int) int {
	return (n + 3) &^ 3
}

// Order returns the byte order to decode wire scalars with, given the
// connection's declared setup byte: 'B' (0x42, big endian) or 'l' (0x6C,
// little endian). Everything downstream reads through this, never through
// a host-native assumption: the proxy may run on either architecture and
// must decode a client's declared order exactly as declared.
func Order(setupByte byte) (binary.ByteOrder, bool, error) {
	switch setupByte {
	case 'B':
		return binary.BigEndian, true, nil
	case 'l':
		return binary.LittleEndian, false, nil
	default:
		return nil, false, errUnknownByteOrder(setupByte)
	}
}

type errUnknownByteOrder byte

func (e errUnknownByteOrder) Error() string {
	return "align: unrecognized byte-order octet " + hex(byte(e))
}

func hex(b byte) string {
	const digits = "0123456789abcdef"
	return "0x" + string([]byte{digits[b>>4], digits[b&0xf]})
}

// Uint16 reads a CARD16/INT16-width scalar at b[0:2] using order.
func Uint16(b []byte, order binary.ByteOrder) uint16 { return order.Uint16(b) }

// Uint32 reads a CARD32/INT32-width scalar at b[0:4] using order.
func Uint32(b []byte, order binary.ByteOrder) uint32 { return order.Uint32(b) }

// Int16 is Uint16 reinterpreted as signed.
func Int16(b []byte, order binary.ByteOrder) int16 { return int16(Uint16(b, order)) }

// Int32 is Uint32 reinterpreted as signed.
func Int32(b []byte, order binary.ByteOrder) int32 { return int32(Uint32(b, order)) }
