//go:build headless

package graphics

import (
	"context"
	"fmt"

	"gones/internal/consoleerr"
)

// EbitenBackend stands in for the real Ebitengine-backed implementation in
// headless builds (no display server, CI, container images without GL),
// where linking ebiten's windowing internals isn't possible or wanted.
type EbitenBackend struct {
	title string
	scale int
}

// NewEbitenBackend creates a stub backend; RenderPixel/VerticalBlank are
// no-ops and Run always fails with ErrBackendInitFailed.
func NewEbitenBackend(title string, scale int) *EbitenBackend {
	return &EbitenBackend{title: title, scale: scale}
}

func (b *EbitenBackend) RenderPixel(x, y int, nesColorIndex uint8) {}
func (b *EbitenBackend) VerticalBlank()                            {}
func (b *EbitenBackend) Poll(ctx context.Context) uint8            { return 0 }
func (b *EbitenBackend) SetFrameStepper(f func() error)            {}
func (b *EbitenBackend) SetVideoProcessor(p *VideoProcessor)       {}

// Run always fails: this build has no windowing backend available.
func (b *EbitenBackend) Run() error {
	return fmt.Errorf("%w: ebiten backend unavailable in headless build", consoleerr.ErrBackendInitFailed)
}
