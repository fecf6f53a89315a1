package schema

// The 17 core X11 error codes. Every error is a fixed 32-byte message:
// byte0=0, byte1=code, bytes2-3=sequence, bytes4-7=bad-value-or-unused,
// bytes8-9=minor-opcode, byte10=major-opcode, bytes11-31=unused. Fields
// below are offsets into that 32-byte layout.

func init() {
	resourceIDFields := []Field{
		{Name: "bad-resource-id", Offset: 4, Kind: KindU32},
		{Name: "minor-opcode", Offset: 8, Kind: KindU16},
		{Name: "major-opcode", Offset: 10, Kind: KindU8},
	}
	simpleFields := []Field{
		{Name: "minor-opcode", Offset: 8, Kind: KindU16},
		{Name: "major-opcode", Offset: 10, Kind: KindU8},
	}
	valueFields := []Field{
		{Name: "bad-value", Offset: 4, Kind: KindU32},
		{Name: "minor-opcode", Offset: 8, Kind: KindU16},
		{Name: "major-opcode", Offset: 10, Kind: KindU8},
	}
	atomFields := []Field{
		{Name: "bad-atom-id", Offset: 4, Kind: KindU32},
		{Name: "minor-opcode", Offset: 8, Kind: KindU16},
		{Name: "major-opcode", Offset: 10, Kind: KindU8},
	}

	registerError(&ErrorEntry{Code: 1, Name: "Request", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 2, Name: "Value", Fields: valueFields})
	registerError(&ErrorEntry{Code: 3, Name: "Window", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 4, Name: "Pixmap", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 5, Name: "Atom", Fields: atomFields})
	registerError(&ErrorEntry{Code: 6, Name: "Cursor", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 7, Name: "Font", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 8, Name: "Match", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 9, Name: "Drawable", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 10, Name: "Access", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 11, Name: "Alloc", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 12, Name: "Colormap", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 13, Name: "GContext", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 14, Name: "IDChoice", Fields: resourceIDFields})
	registerError(&ErrorEntry{Code: 15, Name: "Name", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 16, Name: "Length", Fields: simpleFields})
	registerError(&ErrorEntry{Code: 17, Name: "Implementation", Fields: simpleFields})
}
