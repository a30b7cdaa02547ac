//go:build !headless

package graphics

import "testing"

func TestEbitenBackendRenderPixelIgnoresOutOfBounds(t *testing.T) {
	b := NewEbitenBackend("test", 1)
	b.RenderPixel(-1, 0, 0x20)
	b.RenderPixel(0, -1, 0x20)
	b.RenderPixel(256, 0, 0x20)
	b.RenderPixel(0, 240, 0x20)

	for i, px := range b.frameBuffer {
		if px != 0 {
			t.Fatalf("frameBuffer[%d] = %#06x, want 0", i, px)
		}
	}
}

func TestEbitenBackendVerticalBlankPacksRGBAPixels(t *testing.T) {
	b := NewEbitenBackend("test", 1)
	b.RenderPixel(0, 0, 0x16) // a non-black NES palette entry

	b.VerticalBlank()
	if !b.frameReady {
		t.Fatal("expected frameReady after VerticalBlank")
	}
	if b.pixels[3] != 0xFF {
		t.Fatalf("alpha byte = %#02x, want 0xFF (opaque)", b.pixels[3])
	}
}

func TestEbitenBackendSetFrameStepperStoresCallback(t *testing.T) {
	b := NewEbitenBackend("test", 1)
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
