// Package consoleerr defines the error kinds the core surfaces and the
// exit-code bits the CLI collaborator reports them as.
package consoleerr

import "errors"

// ExitBit identifies one failure kind as a single set bit so the teardown
// path can bitwise-OR several failures into one exit code without ever
// short-circuiting cleanup.
type ExitBit int

const (
	BitUnimplementedOpcode ExitBit = 1 << iota
	BitUnimplementedMapper
	BitBadCartridgeImage
	BitBackendInitFailed
)

// Sentinel errors for the four kinds named in the spec. Wrap with fmt.Errorf
// and "%w" to add context; callers that need the exit bit use As/Is against
// these.
var (
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	ErrUnimplementedMapper = errors.New("unimplemented mapper")
	ErrBadCartridgeImage   = errors.New("bad cartridge image")
	ErrBackendInitFailed   = errors.New("backend init failed")
)

// Bit maps an error produced by this package (or wrapping one of its
// sentinels) to its exit bit. Errors outside this taxonomy map to 0.
func Bit(err error) ExitBit {
	switch {
	case errors.Is(err, ErrUnimplementedOpcode):
		return BitUnimplementedOpcode
	case errors.Is(err, ErrUnimplementedMapper):
		return BitUnimplementedMapper
	case errors.Is(err, ErrBadCartridgeImage):
		return BitBadCartridgeImage
	case errors.Is(err, ErrBackendInitFailed):
		return BitBackendInitFailed
	default:
		return 0
	}
}
