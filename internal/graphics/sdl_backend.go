//go:build !headless

package graphics

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/golang/glog"
	"github.com/veandco/go-sdl2/sdl"

	"gones/internal/consoleerr"
	"gones/internal/ppu"
)

// SDLBackend is the second independent console backend (§11 domain stack),
// proving the PPU/controller backend contracts are display-toolkit agnostic:
// it renders through an SDL2 streaming texture instead of ebiten's image
// pipeline, and polls input through SDL's keyboard state rather than
// ebiten's.
type SDLBackend struct {
	title string
	scale int

	frameBuffer [256 * 240]uint32
	processor   *VideoProcessor
	pixels      []byte // RGB24, 256*240*3

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	stepper func() error
}

// NewSDLBackend creates an unstarted SDL backend. Call Run to open the
// window and block until the player closes it or requests quit.
func NewSDLBackend(title string, scale int) *SDLBackend {
	if scale < 1 {
		scale = 1
	}
	return &SDLBackend{
		title:     title,
		scale:     scale,
		processor: NewVideoProcessor(1.0, 1.0, 1.0),
		pixels:    make([]byte, 256*240*3),
	}
}

// RenderPixel implements the PPU backend's render_pixel operation (§6).
func (b *SDLBackend) RenderPixel(x, y int, nesColorIndex uint8) {
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}
	b.frameBuffer[y*256+x] = ppu.NESColorToRGB(nesColorIndex)
}

// VerticalBlank implements the PPU backend's vertical_blank operation (§6):
// it applies the video processor, packs the frame into the RGB24 buffer the
// streaming texture expects, and presents it.
func (b *SDLBackend) VerticalBlank() {
	processed := b.processor.ProcessFrame(b.frameBuffer[:])
	for i, px := range processed {
		o := i * 3
		b.pixels[o+0] = byte(px >> 16)
		b.pixels[o+1] = byte(px >> 8)
		b.pixels[o+2] = byte(px)
	}

	if b.texture == nil {
		return
	}
	if err := b.texture.Update(nil, unsafe.Pointer(&b.pixels[0]), 256*3); err != nil {
		glog.Errorf("sdl backend: texture update failed: %v", err)
		return
	}
	b.renderer.Clear()
	b.renderer.Copy(b.texture, nil, nil)
	b.renderer.Present()
}

// SetVideoProcessor swaps in a differently-configured brightness/contrast/
// saturation processor.
func (b *SDLBackend) SetVideoProcessor(p *VideoProcessor) { b.processor = p }

// SetFrameStepper registers the function Run calls once per event-loop
// iteration to drive the console forward by one frame's worth of
// Console.Step calls, mirroring EbitenBackend's stepper hook so both
// backends are paced the same way by their own run loop.
func (b *SDLBackend) SetFrameStepper(f func() error) { b.stepper = f }

// sdlKeyOrder maps controller bits (A,B,Select,Start,Up,Down,Left,Right from
// the LSB, §6) to the keys player 1 drives them with, matching
// EbitenBackend's mapping: X=A, Z=B, RShift=Select, Enter=Start, Arrows=D-pad.
var sdlKeyOrder = [8]sdl.Scancode{
	sdl.SCANCODE_X, sdl.SCANCODE_Z, sdl.SCANCODE_RSHIFT, sdl.SCANCODE_RETURN,
	sdl.SCANCODE_UP, sdl.SCANCODE_DOWN, sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT,
}

// Poll implements the controller backend contract (§6): an 8-bit button
// mask in NES order, sampled from SDL's current keyboard state.
func (b *SDLBackend) Poll(ctx context.Context) uint8 {
	state := sdl.GetKeyboardState()
	var mask uint8
	for i, sc := range sdlKeyOrder {
		if state[sc] != 0 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Run opens the window and pumps the SDL event loop until the player closes
// it or presses Escape. Rendering happens in VerticalBlank as frames
// complete; Run owns window lifetime and the quit signal, and calls the
// frame stepper, if one is registered, once per loop iteration.
func (b *SDLBackend) Run() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("%w: sdl init: %v", consoleerr.ErrBackendInitFailed, err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(b.title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(256*b.scale), int32(240*b.scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("%w: sdl create window: %v", consoleerr.ErrBackendInitFailed, err)
	}
	defer window.Destroy()
	b.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("%w: sdl create renderer: %v", consoleerr.ErrBackendInitFailed, err)
	}
	defer renderer.Destroy()
	b.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, 256, 240)
	if err != nil {
		return fmt.Errorf("%w: sdl create texture: %v", consoleerr.ErrBackendInitFailed, err)
	}
	defer texture.Destroy()
	b.texture = texture

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE && e.State == sdl.PRESSED {
					running = false
				}
			}
		}

		if b.stepper != nil {
			if err := b.stepper(); err != nil {
				return err
			}
		}

		sdl.Delay(1)
	}

	return nil
}
