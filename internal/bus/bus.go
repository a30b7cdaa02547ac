// Package bus implements the NES system bus (§4.1): a pure dispatcher
// that owns internal RAM and routes CPU-side and PPU-side accesses to
// the PPU register window, APU registers, controller ports and the
// cartridge view. It owns no CPU, PPU or cartridge state itself.
package bus

import (
	"context"

	"gones/internal/cartridge"
	"gones/internal/controller"
)

// PPURegisters is the CPU-visible $2000-$2007 window plus the OAM-DMA
// target a Bus writes 256 bytes into.
type PPURegisters interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
	WriteOAM(address uint8, value uint8)
}

// APURegisters is the CPU-visible $4000-$4013/$4015/$4017 register
// window (controllers at $4016/$4017 are routed separately).
type APURegisters interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// CartridgeView is the C2 contract (§4.2) the Bus dispatches PRG/CHR
// accesses and mirroring queries through.
type CartridgeView interface {
	PRGRead(address uint16) uint8
	PRGWrite(address uint16, value uint8)
	CHRRead(address uint16) uint8
	CHRWrite(address uint16, value uint8)
	Mirroring() cartridge.Mirroring
}

// Bus is the pure dispatcher described in §4.1.
type Bus struct {
	ram [0x800]uint8

	ppu  PPURegisters
	apu  APURegisters
	cart CartridgeView

	Controller1 *controller.Port
	Controller2 *controller.Port

	ppuBus *PPUBus

	dmaStallCycles uint64
	dmaParityOdd   bool
}

// New creates a Bus wired to the given PPU and APU register windows. A
// cartridge is attached afterward with SetCartridge.
func New(ppu PPURegisters, apu APURegisters) *Bus {
	return &Bus{
		ppu:         ppu,
		apu:         apu,
		Controller1: controller.NewPort(),
		Controller2: controller.NewPort(),
		ppuBus:      newPPUBus(),
	}
}

// SetCartridge attaches a cartridge view, wiring both the CPU-side PRG
// window and the PPU-side CHR/mirroring window to it.
func (b *Bus) SetCartridge(cart CartridgeView) {
	b.cart = cart
	b.ppuBus.cart = cart
}

// PPUBus returns the PPU-side memory view (nametable mirroring, palette
// RAM, cartridge CHR) for wiring into a PPU with SetMemory.
func (b *Bus) PPUBus() *PPUBus { return b.ppuBus }

// Read services a CPU-side read (§4.1).
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.ram[address&0x07FF]
	case address < 0x4000:
		return b.ppu.ReadRegister(0x2000 + address&0x0007)
	case address == 0x4015:
		return b.apu.ReadStatus()
	case address == 0x4016:
		return b.Controller1.Read(context.Background())
	case address == 0x4017:
		return b.Controller2.Read(context.Background())
	case address < 0x4018:
		return 0
	default:
		if b.cart == nil {
			return 0
		}
		return b.cart.PRGRead(address)
	}
}

// Write services a CPU-side write (§4.1).
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value
	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+address&0x0007, value)
	case address == 0x4014:
		b.performOAMDMA(value)
	case address == 0x4016:
		ctx := context.Background()
		b.Controller1.Write(ctx, value)
		b.Controller2.Write(ctx, value)
	case address == 0x4015 || address == 0x4017 || (address >= 0x4000 && address <= 0x4013):
		b.apu.WriteRegister(address, value)
	case address < 0x4020:
		// test-mode registers $4018-$401F: ignored
	default:
		if b.cart != nil {
			b.cart.PRGWrite(address, value)
		}
	}
}

// performOAMDMA copies 256 bytes from (page << 8) into OAM and records
// the CPU stall this costs; the console collects it with TakeDMAStall.
func (b *Bus) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAM(uint8(i), b.Read(base+uint16(i)))
	}
	b.dmaStallCycles = 513
	if b.dmaParityOdd {
		b.dmaStallCycles = 514
	}
}

// SetDMAParityHint tells the Bus whether the CPU cycle count is
// currently odd, which decides whether the next OAM-DMA costs 513 or
// 514 stall cycles. The owning console calls this before every CPU step.
func (b *Bus) SetDMAParityHint(odd bool) { b.dmaParityOdd = odd }

// TakeDMAStall returns and clears the CPU cycles a just-triggered
// OAM-DMA stalled the CPU for, 0 if none occurred.
func (b *Bus) TakeDMAStall() uint64 {
	n := b.dmaStallCycles
	b.dmaStallCycles = 0
	return n
}

// Reset clears RAM-independent bus state (controller ports and any
// pending DMA). RAM itself persists, matching real hardware power-up
// behavior where only a cold boot clears it.
func (b *Bus) Reset() {
	b.Controller1.Reset()
	b.Controller2.Reset()
	b.dmaStallCycles = 0
	b.dmaParityOdd = false
}
