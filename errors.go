package softgl

import "errors"

// ErrorCode is a sticky GL-style error recorded by immediate-mode calls.
// It implements error so it can be wrapped and compared with errors.Is.
type ErrorCode int

// Error codes, in the order GL numbers them.
const (
	NoError ErrorCode = iota
	InvalidEnum
	InvalidValue
	InvalidOperation
	StackOverflow
	StackUnderflow
	OutOfMemory
)

var errorCodeNames = [...]string{
	NoError:          "no error",
	InvalidEnum:      "invalid enum",
	InvalidValue:     "invalid value",
	InvalidOperation: "invalid operation",
	StackOverflow:    "stack overflow",
	StackUnderflow:   "stack underflow",
	OutOfMemory:      "out of memory",
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	return "softgl: " + e.String()
}

// String returns the name of the code.
func (e ErrorCode) String() string {
	if e >= 0 && int(e) < len(errorCodeNames) {
		return errorCodeNames[e]
	}
	return "unknown error"
}

// Lifecycle errors returned by functions that are not commands.
var (
	// ErrInvalidSize is returned when a framebuffer dimension is not positive
	// after the width is rounded down to a multiple of 4.
	ErrInvalidSize = errors.New("softgl: invalid framebuffer size")

	// ErrUnsupportedPixelMode is returned for pixel modes other than PixelARGB32.
	ErrUnsupportedPixelMode = errors.New("softgl: unsupported pixel mode")

	// ErrClosed is returned when using a closed framebuffer or context.
	ErrClosed = errors.New("softgl: closed")

	// ErrNilFramebuffer is returned by NewContext when given a nil framebuffer.
	ErrNilFramebuffer = errors.New("softgl: nil framebuffer")

	// ErrUnknownEncoder is returned by EncodeImage for an unregistered format.
	ErrUnknownEncoder = errors.New("softgl: unknown image encoder")
)
