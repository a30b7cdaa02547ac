//go:build !headless

package graphics

import "testing"

func TestSDLBackendRenderPixelIgnoresOutOfBounds(t *testing.T) {
	b := NewSDLBackend("test", 1)
	b.RenderPixel(-1, 0, 0x20)
	b.RenderPixel(256, 0, 0x20)
	b.RenderPixel(0, 240, 0x20)

	for i, px := range b.frameBuffer {
		if px != 0 {
			t.Fatalf("frameBuffer[%d] = %#06x, want 0", i, px)
		}
	}
}

func TestSDLBackendVerticalBlankIsNoOpWithoutATexture(t *testing.T) {
	b := NewSDLBackend("test", 1)
	b.RenderPixel(0, 0, 0x16)

	// No renderer/texture attached (Run was never called): VerticalBlank
	// must still process the frame into b.pixels without touching SDL.
	b.VerticalBlank()
	if b.pixels[0] == 0 && b.pixels[1] == 0 && b.pixels[2] == 0 {
		t.Fatal("expected the rendered pixel to be packed into b.pixels")
	}
}

func TestSDLBackendSetFrameStepperStoresCallback(t *testing.T) {
	b := NewSDLBackend("test", 1)
	called := false
	b.SetFrameStepper(func() error {
		called = true
		return nil
	})

	if b.stepper == nil {
		t.Fatal("expected stepper to be set")
	}
	if err := b.stepper(); err != nil {
		t.Fatalf("stepper: %v", err)
	}
	if !called {
		t.Fatal("expected the registered frame stepper to run")
	}
}
