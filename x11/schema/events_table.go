package schema

// Core events, codes 2-34. Every event is a fixed 32-byte message except
// KeymapNotify (11), which has no sequence-number field: byte0=code,
// bytes1-31=31 bytes of keymap bits with no gap for a sequence. All others
// follow byte0=code, byte1=detail (often unused), bytes2-3=sequence,
// fields from byte4.

func init() {
	registerEvent(&EventEntry{Code: 2, Name: "KeyPress", HasSequence: true, Fields: keyOrButtonFields()})
	registerEvent(&EventEntry{Code: 3, Name: "KeyRelease", HasSequence: true, Fields: keyOrButtonFields()})
	registerEvent(&EventEntry{Code: 4, Name: "ButtonPress", HasSequence: true, Fields: keyOrButtonFields()})
	registerEvent(&EventEntry{Code: 5, Name: "ButtonRelease", HasSequence: true, Fields: keyOrButtonFields()})
	registerEvent(&EventEntry{Code: 6, Name: "MotionNotify", HasSequence: true, Fields: keyOrButtonFields()})
	registerEvent(&EventEntry{Code: 7, Name: "EnterNotify", HasSequence: true, Fields: crossingFields()})
	registerEvent(&EventEntry{Code: 8, Name: "LeaveNotify", HasSequence: true, Fields: crossingFields()})
	registerEvent(&EventEntry{Code: 9, Name: "FocusIn", HasSequence: true, Fields: focusFields()})
	registerEvent(&EventEntry{Code: 10, Name: "FocusOut", HasSequence: true, Fields: focusFields()})
	registerEvent(&EventEntry{Code: 11, Name: "KeymapNotify", HasSequence: false, Fields: []Field{
		{Name: "keys", Offset: 1, Kind: KindU8}, // representative: 31 bytes of bitmap follow at 1..31
	}})
	registerEvent(&EventEntry{Code: 12, Name: "Expose", HasSequence: true, Fields: []Field{
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "x", Offset: 8, Kind: KindU16},
		{Name: "y", Offset: 10, Kind: KindU16},
		{Name: "width", Offset: 12, Kind: KindU16},
		{Name: "height", Offset: 14, Kind: KindU16},
		{Name: "count", Offset: 16, Kind: KindU16},
	}})
	registerEvent(&EventEntry{Code: 13, Name: "GraphicsExposure", HasSequence: true})
	registerEvent(&EventEntry{Code: 14, Name: "NoExposure", HasSequence: true, Fields: []Field{
		{Name: "drawable", Offset: 4, Kind: KindU32},
		{Name: "minor-opcode", Offset: 8, Kind: KindU16},
		{Name: "major-opcode", Offset: 10, Kind: KindU8},
	}})
	registerEvent(&EventEntry{Code: 15, Name: "VisibilityNotify", HasSequence: true, Fields: []Field{
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "state", Offset: 8, Kind: KindU8},
	}})
	registerEvent(&EventEntry{Code: 16, Name: "CreateNotify", HasSequence: true, Fields: []Field{
		{Name: "parent", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "x", Offset: 12, Kind: KindI16},
		{Name: "y", Offset: 14, Kind: KindI16},
		{Name: "width", Offset: 16, Kind: KindU16},
		{Name: "height", Offset: 18, Kind: KindU16},
		{Name: "border-width", Offset: 20, Kind: KindU16},
		{Name: "override-redirect", Offset: 22, Kind: KindBool8},
	}})
	registerEvent(&EventEntry{Code: 17, Name: "DestroyNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 18, Name: "UnmapNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "from-configure", Offset: 12, Kind: KindBool8},
	}})
	registerEvent(&EventEntry{Code: 19, Name: "MapNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "override-redirect", Offset: 12, Kind: KindBool8},
	}})
	registerEvent(&EventEntry{Code: 20, Name: "MapRequest", HasSequence: true, Fields: []Field{
		{Name: "parent", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 21, Name: "ReparentNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "parent", Offset: 12, Kind: KindU32},
		{Name: "x", Offset: 16, Kind: KindI16},
		{Name: "y", Offset: 18, Kind: KindI16},
		{Name: "override-redirect", Offset: 20, Kind: KindBool8},
	}})
	registerEvent(&EventEntry{Code: 22, Name: "ConfigureNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "above-sibling", Offset: 12, Kind: KindU32},
		{Name: "x", Offset: 16, Kind: KindI16},
		{Name: "y", Offset: 18, Kind: KindI16},
		{Name: "width", Offset: 20, Kind: KindU16},
		{Name: "height", Offset: 22, Kind: KindU16},
		{Name: "border-width", Offset: 24, Kind: KindU16},
		{Name: "override-redirect", Offset: 26, Kind: KindBool8},
	}})
	registerEvent(&EventEntry{Code: 23, Name: "ConfigureRequest", HasSequence: true, Fields: []Field{
		{Name: "stack-mode", Offset: 1, Kind: KindU8, Enum: StackModeNames},
		{Name: "parent", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "sibling", Offset: 12, Kind: KindU32},
		{Name: "x", Offset: 16, Kind: KindI16},
		{Name: "y", Offset: 18, Kind: KindI16},
		{Name: "width", Offset: 20, Kind: KindU16},
		{Name: "height", Offset: 22, Kind: KindU16},
		{Name: "border-width", Offset: 24, Kind: KindU16},
		{Name: "value-mask", Offset: 26, Kind: KindU16, Bitmask: ConfigureWindowBits},
	}})
	registerEvent(&EventEntry{Code: 24, Name: "GravityNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
		{Name: "x", Offset: 12, Kind: KindI16},
		{Name: "y", Offset: 14, Kind: KindI16},
	}})
	registerEvent(&EventEntry{Code: 25, Name: "ResizeRequest", HasSequence: true, Fields: []Field{
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "width", Offset: 8, Kind: KindU16},
		{Name: "height", Offset: 10, Kind: KindU16},
	}})
	registerEvent(&EventEntry{Code: 26, Name: "CirculateNotify", HasSequence: true, Fields: []Field{
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 27, Name: "CirculateRequest", HasSequence: true, Fields: []Field{
		{Name: "parent", Offset: 4, Kind: KindU32},
		{Name: "window", Offset: 8, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 28, Name: "PropertyNotify", HasSequence: true, Fields: []Field{
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "atom", Offset: 8, Kind: KindU32},
		{Name: "time", Offset: 12, Kind: KindU32},
		{Name: "state", Offset: 16, Kind: KindU8, Enum: PropertyStateNames},
	}})
	registerEvent(&EventEntry{Code: 29, Name: "SelectionClear", HasSequence: true, Fields: []Field{
		{Name: "time", Offset: 4, Kind: KindU32},
		{Name: "owner", Offset: 8, Kind: KindU32},
		{Name: "selection", Offset: 12, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 30, Name: "SelectionRequest", HasSequence: true, Fields: []Field{
		{Name: "time", Offset: 4, Kind: KindU32},
		{Name: "owner", Offset: 8, Kind: KindU32},
		{Name: "requestor", Offset: 12, Kind: KindU32},
		{Name: "selection", Offset: 16, Kind: KindU32},
		{Name: "target", Offset: 20, Kind: KindU32},
		{Name: "property", Offset: 24, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 31, Name: "SelectionNotify", HasSequence: true, Fields: []Field{
		{Name: "time", Offset: 4, Kind: KindU32},
		{Name: "requestor", Offset: 8, Kind: KindU32},
		{Name: "selection", Offset: 12, Kind: KindU32},
		{Name: "target", Offset: 16, Kind: KindU32},
		{Name: "property", Offset: 20, Kind: KindU32},
	}})
	registerEvent(&EventEntry{Code: 32, Name: "ColormapNotify", HasSequence: true, Fields: []Field{
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "colormap", Offset: 8, Kind: KindU32},
		{Name: "new", Offset: 12, Kind: KindBool8},
		{Name: "state", Offset: 13, Kind: KindU8},
	}})
	registerEvent(&EventEntry{Code: 33, Name: "ClientMessage", HasSequence: true, Fields: []Field{
		{Name: "format", Offset: 1, Kind: KindU8},
		{Name: "window", Offset: 4, Kind: KindU32},
		{Name: "message-type", Offset: 8, Kind: KindU32},
		// data (20 bytes at offset 12) is not decoded, since its shape
		// depends on message-type.
	}})
	registerEvent(&EventEntry{Code: 34, Name: "MappingNotify", HasSequence: true, Fields: []Field{
		{Name: "request", Offset: 4, Kind: KindU8},
		{Name: "first-keycode", Offset: 5, Kind: KindU8},
		{Name: "count", Offset: 6, Kind: KindU8},
	}})
}

func keyOrButtonFields() []Field {
	return []Field{
		{Name: "detail", Offset: 1, Kind: KindU8},
		{Name: "time", Offset: 4, Kind: KindU32},
		{Name: "root", Offset: 8, Kind: KindU32},
		{Name: "event", Offset: 12, Kind: KindU32},
		{Name: "child", Offset: 16, Kind: KindU32},
		{Name: "root-x", Offset: 20, Kind: KindI16},
		{Name: "root-y", Offset: 22, Kind: KindI16},
		{Name: "event-x", Offset: 24, Kind: KindI16},
		{Name: "event-y", Offset: 26, Kind: KindI16},
		{Name: "state", Offset: 28, Kind: KindU16, Bitmask: KeyButMaskBits},
		{Name: "same-screen", Offset: 30, Kind: KindBool8},
	}
}

func crossingFields() []Field {
	return []Field{
		{Name: "detail", Offset: 1, Kind: KindU8, Enum: NotifyDetailNames},
		{Name: "time", Offset: 4, Kind: KindU32},
		{Name: "root", Offset: 8, Kind: KindU32},
		{Name: "event", Offset: 12, Kind: KindU32},
		{Name: "child", Offset: 16, Kind: KindU32},
		{Name: "root-x", Offset: 20, Kind: KindI16},
		{Name: "root-y", Offset: 22, Kind: KindI16},
		{Name: "event-x", Offset: 24, Kind: KindI16},
		{Name: "event-y", Offset: 26, Kind: KindI16},
		{Name: "state", Offset: 28, Kind: KindU16, Bitmask: KeyButMaskBits},
		{Name: "mode", Offset: 30, Kind: KindU8, Enum: NotifyModeNames},
		{Name: "same-screen-focus", Offset: 31, Kind: KindU8},
	}
}

func focusFields() []Field {
	return []Field{
		{Name: "detail", Offset: 1, Kind: KindU8, Enum: NotifyDetailNames},
		{Name: "event", Offset: 4, Kind: KindU32},
		{Name: "mode", Offset: 8, Kind: KindU8, Enum: NotifyModeNames},
	}
}
