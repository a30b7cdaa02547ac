//go:build headless

package graphics

import (
	"context"
	"fmt"

	"gones/internal/consoleerr"
)

// SDLBackend stands in for the real SDL2-backed implementation in headless
// builds, where linking against the native SDL2 library isn't available.
type SDLBackend struct {
	title string
	scale int
}

// NewSDLBackend creates a stub backend; RenderPixel/VerticalBlank are
// no-ops and Run always fails with ErrBackendInitFailed.
func NewSDLBackend(title string, scale int) *SDLBackend {
	return &SDLBackend{title: title, scale: scale}
}

func (b *SDLBackend) RenderPixel(x, y int, nesColorIndex uint8) {}
func (b *SDLBackend) VerticalBlank()                            {}
func (b *SDLBackend) Poll(ctx context.Context) uint8            { return 0 }
func (b *SDLBackend) SetFrameStepper(f func() error)            {}
func (b *SDLBackend) SetVideoProcessor(p *VideoProcessor)       {}

// Run always fails: this build has no SDL2 backend available.
func (b *SDLBackend) Run() error {
	return fmt.Errorf("%w: sdl backend unavailable in headless build", consoleerr.ErrBackendInitFailed)
}
