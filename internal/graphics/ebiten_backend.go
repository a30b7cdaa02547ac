//go:build !headless

package graphics

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gones/internal/ppu"
)

// EbitenBackend is the primary windowed console backend (§11 domain stack):
// it implements the PPU backend contract (§6) by buffering rendered pixels
// into an RGBA image ebiten presents, and the controller backend contract
// by sampling ebiten's keyboard state.
type EbitenBackend struct {
	title string
	scale int

	frameBuffer [256 * 240]uint32
	processor   *VideoProcessor
	img         *ebiten.Image
	pixels      []byte

	frameReady bool

	stepper func() error
}

// NewEbitenBackend creates an unstarted Ebiten backend. Call Run to open
// the window and block until the player closes it.
func NewEbitenBackend(title string, scale int) *EbitenBackend {
	if scale < 1 {
		scale = 1
	}
	return &EbitenBackend{
		title:     title,
		scale:     scale,
		processor: NewVideoProcessor(1.0, 1.0, 1.0),
		img:       ebiten.NewImage(256, 240),
		pixels:    make([]byte, 256*240*4),
	}
}

// RenderPixel implements the PPU backend's render_pixel operation (§6).
func (b *EbitenBackend) RenderPixel(x, y int, nesColorIndex uint8) {
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}
	b.frameBuffer[y*256+x] = ppu.NESColorToRGB(nesColorIndex)
}

// VerticalBlank implements the PPU backend's vertical_blank operation
// (§6): it applies the video processor and blits the completed frame into
// the ebiten image Draw presents next.
func (b *EbitenBackend) VerticalBlank() {
	processed := b.processor.ProcessFrame(b.frameBuffer[:])
	for i, px := range processed {
		o := i * 4
		b.pixels[o+0] = byte(px >> 16)
		b.pixels[o+1] = byte(px >> 8)
		b.pixels[o+2] = byte(px)
		b.pixels[o+3] = 0xFF
	}
	b.img.WritePixels(b.pixels)
	b.frameReady = true
}

// SetVideoProcessor swaps in a differently-configured brightness/contrast/
// saturation processor.
func (b *EbitenBackend) SetVideoProcessor(p *VideoProcessor) { b.processor = p }

// SetFrameStepper registers the function Update calls once per tick to
// drive the console forward by one frame's worth of Console.Step calls.
// cmd/gones wires this to the Console before calling Run, so ebiten's own
// 60Hz callback loop is what paces emulation (§10: the core has no internal
// timing of its own).
func (b *EbitenBackend) SetFrameStepper(f func() error) { b.stepper = f }

// ebitenKeyOrder maps controller bits (A,B,Select,Start,Up,Down,Left,Right
// from the LSB, §6) to the keys player 1 drives them with.
var ebitenKeyOrder = [8]ebiten.Key{
	ebiten.KeyX, ebiten.KeyZ, ebiten.KeyShiftRight, ebiten.KeyEnter,
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
}

// Poll implements the controller backend contract (§6): an 8-bit button
// mask in NES order, sampled from ebiten's current key state.
func (b *EbitenBackend) Poll(ctx context.Context) uint8 {
	var mask uint8
	for i, key := range ebitenKeyOrder {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// errQuit signals a player-requested window close; Run treats it as a
// normal exit rather than a backend failure.
var errQuit = fmt.Errorf("quit requested")

// Update implements ebiten.Game. Input is sampled on demand by Poll; Update
// watches for the close/quit key and otherwise runs the frame stepper, if
// one is registered.
func (b *EbitenBackend) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if b.stepper != nil {
		return b.stepper()
	}
	return nil
}

// Draw implements ebiten.Game: paints the most recently completed frame,
// scaled to the window.
func (b *EbitenBackend) Draw(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(b.scale), float64(b.scale))
	screen.DrawImage(b.img, opts)
}

// Layout implements ebiten.Game.
func (b *EbitenBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256 * b.scale, 240 * b.scale
}

// Run opens the window and blocks until it is closed. It is the
// entry point cmd/gones calls once all backends are registered with the
// Console.
func (b *EbitenBackend) Run() error {
	ebiten.SetWindowSize(256*b.scale, 240*b.scale)
	ebiten.SetWindowTitle(b.title)
	if err := ebiten.RunGame(b); err != nil && err != errQuit {
		glog.Errorf("ebiten backend exited: %v", err)
		return err
	}
	return nil
}
