package console

import (
	"bytes"
	"context"
	"testing"

	"gones/internal/cartridge"
)

// newTestCartridge builds a minimal one-bank NROM image: program bytes
// start at CPU $8000, with the reset vector pointed at them.
func newTestCartridge(t *testing.T, program []byte) *cartridge.Cartridge {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1 x 16KB PRG bank
	buf.WriteByte(0) // 0 CHR banks -> CHR RAM
	buf.Write(make([]byte, 10))

	prg := make([]byte, 0x4000)
	copy(prg, program)
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80 // reset vector high
	buf.Write(prg)

	cart, err := cartridge.LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return cart
}

type fakeBackend struct {
	pixels int
	vblanks int
}

func (f *fakeBackend) RenderPixel(x, y int, nesColorIndex uint8) { f.pixels++ }
func (f *fakeBackend) VerticalBlank()                            { f.vblanks++ }

type fakeController uint8

func (f fakeController) Poll(ctx context.Context) uint8 { return uint8(f) }

func TestInsertCartridgeLoadsResetVector(t *testing.T) {
	c := New()
	cart := newTestCartridge(t, []byte{0xEA}) // NOP
	c.InsertCartridge(cart)

	if got := c.CPUState().PC; got != 0x8000 {
		t.Fatalf("PC after insert = %#04x, want 0x8000", got)
	}
}

func TestStepAdvancesPPUThreeDotsPerCPUCycle(t *testing.T) {
	c := New()
	cart := newTestCartridge(t, []byte{0xEA}) // NOP: 2 cycles
	c.InsertCartridge(cart)

	startCycle := c.PPUState().Cycle
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	gotCycle := c.PPUState().Cycle
	advanced := (gotCycle - startCycle + 341) % 341
	if advanced != 6 { // 2 CPU cycles * 3 dots
		t.Fatalf("PPU advanced %d dots, want 6", advanced)
	}
}

func TestUnimplementedOpcodeHaltsStep(t *testing.T) {
	c := New()
	cart := newTestCartridge(t, []byte{0x02}) // JAM: undecoded
	c.InsertCartridge(cart)

	if err := c.Step(); err == nil {
		t.Fatal("expected Step to return an error for an unimplemented opcode")
	}
}

func TestPPUBackendFanOutReceivesPixelsAndVBlank(t *testing.T) {
	c := New()
	// Infinite loop (JMP $8000) so repeated Step calls keep driving frames.
	cart := newTestCartridge(t, []byte{0x4C, 0x00, 0x80})
	c.InsertCartridge(cart)

	backend := &fakeBackend{}
	c.AddPPUBackend(backend)

	// One full frame is ~29781 CPU cycles at 3 cycles/instruction (JMP).
	for i := 0; i < 10000; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if backend.vblanks == 0 {
		t.Fatal("expected at least one vertical_blank callback after a frame's worth of steps")
	}
}

func TestPPUBackendFanOutCapsAtFour(t *testing.T) {
	c := New()
	for i := 0; i < 6; i++ {
		c.AddPPUBackend(&fakeBackend{})
	}
	if len(c.ppuBackends) != maxPPUBackends {
		t.Fatalf("ppuBackends = %d, want %d", len(c.ppuBackends), maxPPUBackends)
	}
}

func TestControllerBackendRoutedThroughBusPorts(t *testing.T) {
	c := New()
	c.AddControllerBackend(1, fakeController(0x01))

	c.bus.Write(0x4016, 1)
	c.bus.Write(0x4016, 0)
	if got := c.bus.Read(0x4016); got != 1 {
		t.Fatalf("first $4016 read = %d, want 1", got)
	}
}

func TestResetReloadsCPUStateWithoutDetachingCartridge(t *testing.T) {
	c := New()
	cart := newTestCartridge(t, []byte{0xA9, 0x42}) // LDA #$42
	c.InsertCartridge(cart)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.CPUState().A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42 before reset", c.CPUState().A)
	}

	c.Reset()
	if got := c.CPUState().PC; got != 0x8000 {
		t.Fatalf("PC after Reset = %#04x, want 0x8000", got)
	}
	if got := c.CPUState().A; got != 0 {
		t.Fatalf("A after Reset = %#02x, want 0 (reset re-establishes power-up register state)", got)
	}
}
