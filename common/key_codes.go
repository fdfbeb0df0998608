package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII)
	KeyA = 65 // A key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyR = 82 // R key (ASCII)
	KeyF = 70 // F key (ASCII)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
)

// Additional non-printable keys
const (
	KeyRight     = 262 // Right arrow (GLFW)
	KeyLeft      = 263 // Left arrow (GLFW)
	KeyDown      = 264 // Down arrow (GLFW)
	KeyUp        = 265 // Up arrow (GLFW)
	KeyLeftAlt   = 342 // Left Alt (GLFW)
	KeyRightAlt  = 346 // Right Alt (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
	KeyUnknown   = -1  // Unmapped key
	KeyLeftShift = 340 // Left Shift (GLFW)
)

// DOM keyCode values sent by browser hosts.
const (
	domKeyAlt   = 18
	domKeyLeft  = 37
	domKeyUp    = 38
	domKeyRight = 39
	domKeyDown  = 40
)

// FromDOMKeyCode maps a browser KeyboardEvent keyCode to a virtual key code.
// Legacy browsers report keyCode 0 for printable keys and carry the character in
// which (lower-case ASCII), so which is consulted in that case.
//
// Parameters:
//   - keyCode: the DOM keyCode
//   - which: the DOM which value
//
// Returns:
//   - int: the virtual key code, or KeyUnknown
func FromDOMKeyCode(keyCode, which int) int {
	if keyCode == 0 {
		switch which {
		case Key1, Key2:
			keyCode = which
		case 'w':
			keyCode = KeyW
		case 'd':
			keyCode = KeyD
		case 'a':
			keyCode = KeyA
		case 's':
			keyCode = KeyS
		default:
			return KeyUnknown
		}
	}
	switch keyCode {
	case domKeyAlt:
		return KeyLeftAlt
	case domKeyLeft:
		return KeyLeft
	case domKeyUp:
		return KeyUp
	case domKeyRight:
		return KeyRight
	case domKeyDown:
		return KeyDown
	}
	// Digits and upper-case letters share ASCII codes between DOM and GLFW.
	if (keyCode >= '0' && keyCode <= '9') || (keyCode >= 'A' && keyCode <= 'Z') {
		return keyCode
	}
	return KeyUnknown
}
