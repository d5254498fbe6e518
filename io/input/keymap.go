// SPDX-License-Identifier: Unlicense OR MIT

package input

import "github.com/openwl/owl/io/key"

// Lookup translates a raw platform key code into its physical
// identity. space selects the translation table; dom carries the code
// string for key.SpaceDOM. Codes outside the table map to
// key.CodeUnknown.
func Lookup(space key.CodeSpace, code uint32, dom string) key.Code {
	switch space {
	case key.SpaceEvdev:
		return evdevCodes[code]
	case key.SpaceWin32:
		return win32Codes[code]
	case key.SpaceMac:
		return macCodes[code]
	case key.SpaceDOM:
		return domCodes[dom]
	default:
		return key.CodeUnknown
	}
}

// evdevCodes maps Linux input-event KEY_* values. X11 keycodes are
// evdev values offset by 8; backends subtract the offset before
// delivery.
var evdevCodes = map[uint32]key.Code{
	1:   key.CodeEscape,
	2:   key.CodeDigit1,
	3:   key.CodeDigit2,
	4:   key.CodeDigit3,
	5:   key.CodeDigit4,
	6:   key.CodeDigit5,
	7:   key.CodeDigit6,
	8:   key.CodeDigit7,
	9:   key.CodeDigit8,
	10:  key.CodeDigit9,
	11:  key.CodeDigit0,
	12:  key.CodeMinus,
	13:  key.CodeEqual,
	14:  key.CodeBackspace,
	15:  key.CodeTab,
	16:  key.CodeKeyQ,
	17:  key.CodeKeyW,
	18:  key.CodeKeyE,
	19:  key.CodeKeyR,
	20:  key.CodeKeyT,
	21:  key.CodeKeyY,
	22:  key.CodeKeyU,
	23:  key.CodeKeyI,
	24:  key.CodeKeyO,
	25:  key.CodeKeyP,
	26:  key.CodeBracketLeft,
	27:  key.CodeBracketRight,
	28:  key.CodeEnter,
	29:  key.CodeControlLeft,
	30:  key.CodeKeyA,
	31:  key.CodeKeyS,
	32:  key.CodeKeyD,
	33:  key.CodeKeyF,
	34:  key.CodeKeyG,
	35:  key.CodeKeyH,
	36:  key.CodeKeyJ,
	37:  key.CodeKeyK,
	38:  key.CodeKeyL,
	39:  key.CodeSemicolon,
	40:  key.CodeQuote,
	41:  key.CodeBackquote,
	42:  key.CodeShiftLeft,
	43:  key.CodeBackslash,
	44:  key.CodeKeyZ,
	45:  key.CodeKeyX,
	46:  key.CodeKeyC,
	47:  key.CodeKeyV,
	48:  key.CodeKeyB,
	49:  key.CodeKeyN,
	50:  key.CodeKeyM,
	51:  key.CodeComma,
	52:  key.CodePeriod,
	53:  key.CodeSlash,
	54:  key.CodeShiftRight,
	55:  key.CodeNumpadMultiply,
	56:  key.CodeAltLeft,
	57:  key.CodeSpaceBar,
	58:  key.CodeCapsLock,
	59:  key.CodeF1,
	60:  key.CodeF2,
	61:  key.CodeF3,
	62:  key.CodeF4,
	63:  key.CodeF5,
	64:  key.CodeF6,
	65:  key.CodeF7,
	66:  key.CodeF8,
	67:  key.CodeF9,
	68:  key.CodeF10,
	69:  key.CodeNumLock,
	70:  key.CodeScrollLock,
	71:  key.CodeNumpad7,
	72:  key.CodeNumpad8,
	73:  key.CodeNumpad9,
	74:  key.CodeNumpadSubtract,
	75:  key.CodeNumpad4,
	76:  key.CodeNumpad5,
	77:  key.CodeNumpad6,
	78:  key.CodeNumpadAdd,
	79:  key.CodeNumpad1,
	80:  key.CodeNumpad2,
	81:  key.CodeNumpad3,
	82:  key.CodeNumpad0,
	83:  key.CodeNumpadDecimal,
	86:  key.CodeIntlBackslash,
	87:  key.CodeF11,
	88:  key.CodeF12,
	96:  key.CodeNumpadEnter,
	97:  key.CodeControlRight,
	98:  key.CodeNumpadDivide,
	99:  key.CodePrintScreen,
	100: key.CodeAltRight,
	102: key.CodeHome,
	103: key.CodeArrowUp,
	104: key.CodePageUp,
	105: key.CodeArrowLeft,
	106: key.CodeArrowRight,
	107: key.CodeEnd,
	108: key.CodeArrowDown,
	109: key.CodePageDown,
	110: key.CodeInsert,
	111: key.CodeDelete,
	119: key.CodePause,
	125: key.CodeSuperLeft,
	126: key.CodeSuperRight,
	127: key.CodeContextMenu,
}

// win32Codes maps Windows virtual-key values. VK codes do not
// distinguish the numpad enter from the main one.
var win32Codes = map[uint32]key.Code{
	0x08: key.CodeBackspace,
	0x09: key.CodeTab,
	0x0D: key.CodeEnter,
	0x13: key.CodePause,
	0x14: key.CodeCapsLock,
	0x1B: key.CodeEscape,
	0x20: key.CodeSpaceBar,
	0x21: key.CodePageUp,
	0x22: key.CodePageDown,
	0x23: key.CodeEnd,
	0x24: key.CodeHome,
	0x25: key.CodeArrowLeft,
	0x26: key.CodeArrowUp,
	0x27: key.CodeArrowRight,
	0x28: key.CodeArrowDown,
	0x2C: key.CodePrintScreen,
	0x2D: key.CodeInsert,
	0x2E: key.CodeDelete,
	0x30: key.CodeDigit0,
	0x31: key.CodeDigit1,
	0x32: key.CodeDigit2,
	0x33: key.CodeDigit3,
	0x34: key.CodeDigit4,
	0x35: key.CodeDigit5,
	0x36: key.CodeDigit6,
	0x37: key.CodeDigit7,
	0x38: key.CodeDigit8,
	0x39: key.CodeDigit9,
	0x41: key.CodeKeyA,
	0x42: key.CodeKeyB,
	0x43: key.CodeKeyC,
	0x44: key.CodeKeyD,
	0x45: key.CodeKeyE,
	0x46: key.CodeKeyF,
	0x47: key.CodeKeyG,
	0x48: key.CodeKeyH,
	0x49: key.CodeKeyI,
	0x4A: key.CodeKeyJ,
	0x4B: key.CodeKeyK,
	0x4C: key.CodeKeyL,
	0x4D: key.CodeKeyM,
	0x4E: key.CodeKeyN,
	0x4F: key.CodeKeyO,
	0x50: key.CodeKeyP,
	0x51: key.CodeKeyQ,
	0x52: key.CodeKeyR,
	0x53: key.CodeKeyS,
	0x54: key.CodeKeyT,
	0x55: key.CodeKeyU,
	0x56: key.CodeKeyV,
	0x57: key.CodeKeyW,
	0x58: key.CodeKeyX,
	0x59: key.CodeKeyY,
	0x5A: key.CodeKeyZ,
	0x5B: key.CodeSuperLeft,
	0x5C: key.CodeSuperRight,
	0x5D: key.CodeContextMenu,
	0x60: key.CodeNumpad0,
	0x61: key.CodeNumpad1,
	0x62: key.CodeNumpad2,
	0x63: key.CodeNumpad3,
	0x64: key.CodeNumpad4,
	0x65: key.CodeNumpad5,
	0x66: key.CodeNumpad6,
	0x67: key.CodeNumpad7,
	0x68: key.CodeNumpad8,
	0x69: key.CodeNumpad9,
	0x6A: key.CodeNumpadMultiply,
	0x6B: key.CodeNumpadAdd,
	0x6D: key.CodeNumpadSubtract,
	0x6E: key.CodeNumpadDecimal,
	0x6F: key.CodeNumpadDivide,
	0x70: key.CodeF1,
	0x71: key.CodeF2,
	0x72: key.CodeF3,
	0x73: key.CodeF4,
	0x74: key.CodeF5,
	0x75: key.CodeF6,
	0x76: key.CodeF7,
	0x77: key.CodeF8,
	0x78: key.CodeF9,
	0x79: key.CodeF10,
	0x7A: key.CodeF11,
	0x7B: key.CodeF12,
	0x90: key.CodeNumLock,
	0x91: key.CodeScrollLock,
	0xA0: key.CodeShiftLeft,
	0xA1: key.CodeShiftRight,
	0xA2: key.CodeControlLeft,
	0xA3: key.CodeControlRight,
	0xA4: key.CodeAltLeft,
	0xA5: key.CodeAltRight,
	0xBA: key.CodeSemicolon,
	0xBB: key.CodeEqual,
	0xBC: key.CodeComma,
	0xBD: key.CodeMinus,
	0xBE: key.CodePeriod,
	0xBF: key.CodeSlash,
	0xC0: key.CodeBackquote,
	0xDB: key.CodeBracketLeft,
	0xDC: key.CodeBackslash,
	0xDD: key.CodeBracketRight,
	0xDE: key.CodeQuote,
}

// macCodes maps macOS virtual keycodes (HIToolbox kVK_* values).
var macCodes = map[uint32]key.Code{
	0x00: key.CodeKeyA,
	0x01: key.CodeKeyS,
	0x02: key.CodeKeyD,
	0x03: key.CodeKeyF,
	0x04: key.CodeKeyH,
	0x05: key.CodeKeyG,
	0x06: key.CodeKeyZ,
	0x07: key.CodeKeyX,
	0x08: key.CodeKeyC,
	0x09: key.CodeKeyV,
	0x0A: key.CodeIntlBackslash,
	0x0B: key.CodeKeyB,
	0x0C: key.CodeKeyQ,
	0x0D: key.CodeKeyW,
	0x0E: key.CodeKeyE,
	0x0F: key.CodeKeyR,
	0x10: key.CodeKeyY,
	0x11: key.CodeKeyT,
	0x12: key.CodeDigit1,
	0x13: key.CodeDigit2,
	0x14: key.CodeDigit3,
	0x15: key.CodeDigit4,
	0x16: key.CodeDigit6,
	0x17: key.CodeDigit5,
	0x18: key.CodeEqual,
	0x19: key.CodeDigit9,
	0x1A: key.CodeDigit7,
	0x1B: key.CodeMinus,
	0x1C: key.CodeDigit8,
	0x1D: key.CodeDigit0,
	0x1E: key.CodeBracketRight,
	0x1F: key.CodeKeyO,
	0x20: key.CodeKeyU,
	0x21: key.CodeBracketLeft,
	0x22: key.CodeKeyI,
	0x23: key.CodeKeyP,
	0x24: key.CodeEnter,
	0x25: key.CodeKeyL,
	0x26: key.CodeKeyJ,
	0x27: key.CodeQuote,
	0x28: key.CodeKeyK,
	0x29: key.CodeSemicolon,
	0x2A: key.CodeBackslash,
	0x2B: key.CodeComma,
	0x2C: key.CodeSlash,
	0x2D: key.CodeKeyN,
	0x2E: key.CodeKeyM,
	0x2F: key.CodePeriod,
	0x30: key.CodeTab,
	0x31: key.CodeSpaceBar,
	0x32: key.CodeBackquote,
	0x33: key.CodeBackspace,
	0x35: key.CodeEscape,
	0x36: key.CodeSuperRight,
	0x37: key.CodeSuperLeft,
	0x38: key.CodeShiftLeft,
	0x39: key.CodeCapsLock,
	0x3A: key.CodeAltLeft,
	0x3B: key.CodeControlLeft,
	0x3C: key.CodeShiftRight,
	0x3D: key.CodeAltRight,
	0x3E: key.CodeControlRight,
	0x41: key.CodeNumpadDecimal,
	0x43: key.CodeNumpadMultiply,
	0x45: key.CodeNumpadAdd,
	0x47: key.CodeNumLock,
	0x4B: key.CodeNumpadDivide,
	0x4C: key.CodeNumpadEnter,
	0x4E: key.CodeNumpadSubtract,
	0x52: key.CodeNumpad0,
	0x53: key.CodeNumpad1,
	0x54: key.CodeNumpad2,
	0x55: key.CodeNumpad3,
	0x56: key.CodeNumpad4,
	0x57: key.CodeNumpad5,
	0x58: key.CodeNumpad6,
	0x59: key.CodeNumpad7,
	0x5B: key.CodeNumpad8,
	0x5C: key.CodeNumpad9,
	0x60: key.CodeF5,
	0x61: key.CodeF6,
	0x62: key.CodeF7,
	0x63: key.CodeF3,
	0x64: key.CodeF8,
	0x65: key.CodeF9,
	0x67: key.CodeF11,
	0x6D: key.CodeF10,
	0x6F: key.CodeF12,
	0x72: key.CodeInsert,
	0x73: key.CodeHome,
	0x74: key.CodePageUp,
	0x75: key.CodeDelete,
	0x76: key.CodeF4,
	0x77: key.CodeEnd,
	0x78: key.CodeF2,
	0x79: key.CodePageDown,
	0x7A: key.CodeF1,
	0x7B: key.CodeArrowLeft,
	0x7C: key.CodeArrowRight,
	0x7D: key.CodeArrowDown,
	0x7E: key.CodeArrowUp,
}

// domCodes maps W3C code strings. Code.String mirrors the DOM names,
// so the table is the inverse of the name table plus legacy aliases
// some engines still emit.
var domCodes = make(map[string]key.Code)

func init() {
	for c := key.Code(1); ; c++ {
		name := c.String()
		if name == "Unknown" {
			break
		}
		domCodes[name] = c
	}
	domCodes["OSLeft"] = key.CodeSuperLeft
	domCodes["OSRight"] = key.CodeSuperRight
}
