package graphics

import "testing"

func TestHeadlessBackendIgnoresOutOfBoundsPixels(t *testing.T) {
	b := NewHeadlessBackend()
	b.RenderPixel(-1, 0, 0x20)
	b.RenderPixel(0, 240, 0x20)
	b.RenderPixel(256, 0, 0x20)

	b.VerticalBlank()
	frame := b.LastFrame()
	for i, px := range frame {
		if px != 0 {
			t.Fatalf("pixel %d = %#06x, want 0 (out-of-bounds writes must be dropped)", i, px)
		}
	}
}

func TestHeadlessBackendBuffersPixelsUntilVerticalBlank(t *testing.T) {
	b := NewHeadlessBackend()
	b.RenderPixel(5, 10, 0x16) // a red-ish NES palette entry

	if b.FrameCount() != 0 {
		t.Fatalf("FrameCount = %d before any VerticalBlank, want 0", b.FrameCount())
	}

	b.VerticalBlank()
	if b.FrameCount() != 1 {
		t.Fatalf("FrameCount = %d after one VerticalBlank, want 1", b.FrameCount())
	}

	frame := b.LastFrame()
	if frame[10*256+5] == 0 {
		t.Fatal("expected the rendered pixel to survive into LastFrame")
	}
}

func TestHeadlessBackendPollReturnsNoInput(t *testing.T) {
	b := NewHeadlessBackend()
	if got := b.Poll(nil); got != 0 {
		t.Fatalf("Poll = %#02x, want 0 (headless mode supplies no input)", got)
	}
}
