package schema

// Shared enum/bitmask name tables, referenced by multiple request, reply,
// or event fields. Grouped here rather than inline in each table file
// because several of these (WindowClass, EventMask) are reused verbatim
// across CreateWindow, ChangeWindowAttributes, and several events.

var WindowClassNames = &EnumTable{Names: map[uint32]string{
	0: "CopyFromParent",
	1: "InputOutput",
	2: "InputOnly",
}}

var BackingStoreNames = &EnumTable{Names: map[uint32]string{
	0: "NotUseful",
	1: "WhenMapped",
	2: "Always",
}}

var StackModeNames = &EnumTable{Names: map[uint32]string{
	0: "Above",
	1: "Below",
	2: "TopIf",
	3: "BottomIf",
	4: "Opposite",
}}

var GrabModeNames = &EnumTable{Names: map[uint32]string{
	0: "Synchronous",
	1: "Asynchronous",
}}

var PropModeNames = &EnumTable{Names: map[uint32]string{
	0: "Replace",
	1: "Prepend",
	2: "Append",
}}

var GrabStatusNames = &EnumTable{Names: map[uint32]string{
	0: "Success",
	1: "AlreadyGrabbed",
	2: "InvalidTime",
	3: "NotViewable",
	4: "Frozen",
}}

// EventMaskBits names the bits of the 32-bit event-mask bitmask shared by
// CreateWindow's value-list, ChangeWindowAttributes, and SelectInput.
var EventMaskBits = &EnumTable{Names: map[uint32]string{
	0:  "KeyPress",
	1:  "KeyRelease",
	2:  "ButtonPress",
	3:  "ButtonRelease",
	4:  "EnterWindow",
	5:  "LeaveWindow",
	6:  "PointerMotion",
	7:  "PointerMotionHint",
	8:  "Button1Motion",
	9:  "Button2Motion",
	10: "Button3Motion",
	11: "Button4Motion",
	12: "Button5Motion",
	13: "ButtonMotion",
	14: "KeymapState",
	15: "Exposure",
	16: "VisibilityChange",
	17: "StructureNotify",
	18: "ResizeRedirect",
	19: "SubstructureNotify",
	20: "SubstructureRedirect",
	21: "FocusChange",
	22: "PropertyChange",
	23: "ColormapChange",
	24: "OwnerGrabButton",
}}

// KeyButMaskBits names the bits of the KEYBUTMASK shared by pointer/key
// events (state field).
var KeyButMaskBits = &EnumTable{Names: map[uint32]string{
	0: "Shift",
	1: "Lock",
	2: "Control",
	3: "Mod1",
	4: "Mod2",
	5: "Mod3",
	6: "Mod4",
	7: "Mod5",
	8: "Button1",
	9: "Button2",
	10: "Button3",
	11: "Button4",
	12: "Button5",
}}

var NotifyDetailNames = &EnumTable{Names: map[uint32]string{
	0: "Ancestor",
	1: "Virtual",
	2: "Inferior",
	3: "Nonlinear",
	4: "NonlinearVirtual",
	5: "Pointer",
	6: "PointerRoot",
	7: "None",
}}

var NotifyModeNames = &EnumTable{Names: map[uint32]string{
	0: "Normal",
	1: "Grab",
	2: "Ungrab",
	3: "WhileGrabbed",
}}

var PropertyStateNames = &EnumTable{Names: map[uint32]string{
	0: "NewValue",
	1: "Deleted",
}}

var ConfigureWindowBits = &EnumTable{Names: map[uint32]string{
	0: "X",
	1: "Y",
	2: "Width",
	3: "Height",
	4: "BorderWidth",
	5: "Sibling",
	6: "StackMode",
}}

// PropertyFormatNames is Strict: format names the element width of the
// property data, and 8/16/32 are the only values the protocol defines —
// anything else is a hard parse error (B3). The data suffix itself is
// sized from its length field as a byte count; format does not scale it.
var PropertyFormatNames = &EnumTable{Strict: true, Names: map[uint32]string{
	8:  "8",
	16: "16",
	32: "32",
}}
