// Package console implements the Console (§4.5): the component that owns
// the Bus, Cartridge, CPU and PPU, drives them in lockstep one CPU
// instruction at a time, and fans rendered pixels and vertical-blank events
// out to presentation backends (§6).
package console

import (
	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/controller"
	"gones/internal/cpu"
	"gones/internal/ppu"
)

// maxPPUBackends bounds display fan-out (§4.5: "maximum small fixed N, e.g.
// 4"), mirroring the same cap controller.Port applies to input backends.
const maxPPUBackends = 4

// PPUBackend is the presentation contract a console fans rendered frames
// out to (§6): render_pixel is called up to 256x240 times per frame,
// vertical_blank once at the end of each frame.
type PPUBackend interface {
	RenderPixel(x, y int, nesColorIndex uint8)
	VerticalBlank()
}

// CPUState is a read-only snapshot of the CPU's visible registers and
// flags, for a CLI/debugger collaborator to display.
type CPUState struct {
	A, X, Y, SP uint8
	PC          uint16
	Status      uint8
	Cycles      uint64
}

// PPUState is a read-only snapshot of PPU scan position and frame progress.
type PPUState struct {
	Scanline   int
	Cycle      int
	FrameCount uint64
}

// Console owns C1-C4 (§2) and drives them strictly in sequence within one
// logical thread (§5): no operation suspends, every Step is bounded, and
// resources (RAM, VRAM, OAM, palette, cartridge view) are scoped to the
// Console's own lifetime.
type Console struct {
	bus *bus.Bus
	cpu *cpu.CPU
	ppu *ppu.PPU
	apu *apu.APU

	cart *cartridge.Cartridge

	ppuBackends []PPUBackend
}

// New allocates and zero-initializes a Console (§3 lifecycle): RAM, VRAM,
// OAM and palette start zeroed, and the PPU starts at scanline 241 so the
// first Step enters post-vblank region cleanly. No cartridge is attached
// yet; Step executes against empty PRG space until InsertCartridge is
// called.
func New() *Console {
	a := apu.New()
	p := ppu.New()
	b := bus.New(p, a)
	p.SetMemory(b.PPUBus())
	c := cpu.New(b)

	console := &Console{bus: b, cpu: c, ppu: p, apu: a}
	p.SetPixelCallback(console.dispatchPixel)
	p.SetVBlankCallback(console.dispatchVBlank)
	return console
}

// InsertCartridge attaches a cartridge view, wiring the CPU-side PRG window
// and the PPU-side CHR/mirroring window to it, then resets the Console so
// the CPU starts executing from the cartridge's reset vector (§6).
func (c *Console) InsertCartridge(cart *cartridge.Cartridge) {
	c.cart = cart
	c.bus.SetCartridge(cart)
	c.Reset()
}

// Reset re-establishes CPU power-up state (registers, PC loaded from the
// reset vector) and clears PPU/APU/bus transient state, without detaching
// the cartridge.
func (c *Console) Reset() {
	c.bus.Reset()
	c.ppu.Reset()
	c.apu.Reset()
	c.cpu.Reset()
}

// AddPPUBackend registers a presentation endpoint. Backends beyond
// maxPPUBackends are silently dropped, matching the controller port's
// fan-out cap.
func (c *Console) AddPPUBackend(b PPUBackend) {
	if len(c.ppuBackends) >= maxPPUBackends {
		return
	}
	c.ppuBackends = append(c.ppuBackends, b)
}

// AddControllerBackend registers an input source on controller port 1 or 2
// (any other player number is a no-op).
func (c *Console) AddControllerBackend(player int, b controller.Backend) {
	switch player {
	case 1:
		c.bus.Controller1.AddBackend(b)
	case 2:
		c.bus.Controller2.AddBackend(b)
	}
}

func (c *Console) dispatchPixel(x, y int, nesColorIndex uint8) {
	for _, b := range c.ppuBackends {
		b.RenderPixel(x, y, nesColorIndex)
	}
}

func (c *Console) dispatchVBlank() {
	for _, b := range c.ppuBackends {
		b.VerticalBlank()
	}
}

// Step executes exactly one CPU instruction, then drives the PPU and APU
// forward by that instruction's cycle count (three PPU dots and one APU
// tick per CPU cycle, §4.4/§5), sampling the PPU's NMI line and the APU's
// frame-IRQ line back into the CPU as it goes. It returns the
// UnimplementedOpcode error (§7) if the CPU halted on an undecoded opcode;
// the caller's outer driver loop should stop stepping once this happens.
func (c *Console) Step() error {
	c.bus.SetDMAParityHint(c.cpu.Cycles()%2 != 0)

	cycles := c.cpu.Step()
	if err := c.cpu.Err(); err != nil {
		return err
	}

	cycles += c.bus.TakeDMAStall()

	for i := uint64(0); i < cycles; i++ {
		c.apu.Step()
		c.cpu.SetIRQ(c.apu.FrameIRQ())

		for dot := 0; dot < 3; dot++ {
			c.ppu.Step()
			c.cpu.SetNMI(c.ppu.NMILine())
		}
	}

	return nil
}

// FrameBuffer returns the pixels rendered for the PPU's current frame.
func (c *Console) FrameBuffer() [256 * 240]uint32 { return c.ppu.FrameBuffer() }

// FrameCount returns the number of frames the PPU has completed.
func (c *Console) FrameCount() uint64 { return c.ppu.FrameCount() }

// CPUCycles returns the running total of CPU cycles consumed since
// construction, used by a driver loop to pace real-time emulation.
func (c *Console) CPUCycles() uint64 { return c.cpu.Cycles() }

// CPUState returns a snapshot of the CPU's registers and flags.
func (c *Console) CPUState() CPUState {
	return CPUState{
		A: c.cpu.A, X: c.cpu.X, Y: c.cpu.Y, SP: c.cpu.SP, PC: c.cpu.PC,
		Status: c.cpu.StatusByte(), Cycles: c.cpu.Cycles(),
	}
}

// PPUState returns a snapshot of PPU scan position and frame progress.
func (c *Console) PPUState() PPUState {
	return PPUState{Scanline: c.ppu.Scanline(), Cycle: c.ppu.Cycle(), FrameCount: c.ppu.FrameCount()}
}
