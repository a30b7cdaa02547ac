package graphics

import (
	"context"
	"sync"

	"gones/internal/ppu"
)

// HeadlessBackend is a display-less console backend for tests: it buffers
// frames in memory instead of presenting them, and never supplies
// controller input. The --nogui CLI path does not use it; it runs the
// console with no backend registered. It needs no third-party dependency
// because it does no presentation, only bookkeeping.
type HeadlessBackend struct {
	mu          sync.Mutex
	frameBuffer [256 * 240]uint32
	processor   *VideoProcessor
	frameCount  uint64
	lastFrame   [256 * 240]uint32
}

// NewHeadlessBackend creates a headless backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{processor: NewVideoProcessor(1.0, 1.0, 1.0)}
}

// RenderPixel implements the PPU backend's render_pixel operation (§6).
func (b *HeadlessBackend) RenderPixel(x, y int, nesColorIndex uint8) {
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frameBuffer[y*256+x] = ppu.NESColorToRGB(nesColorIndex)
}

// VerticalBlank implements the PPU backend's vertical_blank operation (§6):
// it runs the video processor over the completed frame and retains it for
// LastFrame, without presenting anywhere.
func (b *HeadlessBackend) VerticalBlank() {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.lastFrame[:], b.processor.ProcessFrame(b.frameBuffer[:]))
	b.frameCount++
}

// Poll implements the controller backend contract (§6): headless mode
// supplies no input.
func (b *HeadlessBackend) Poll(ctx context.Context) uint8 { return 0 }

// LastFrame returns the most recently completed, processed frame.
func (b *HeadlessBackend) LastFrame() [256 * 240]uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastFrame
}

// FrameCount returns the number of frames VerticalBlank has completed.
func (b *HeadlessBackend) FrameCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameCount
}
