package bus

import "gones/internal/cartridge"

// PPUBus is the PPU-side memory view (§4.1 "PPU-side read/write"): 2KB of
// physical nametable RAM mirrored per the cartridge's arrangement, 32
// bytes of palette RAM with its background-color aliasing, and cartridge
// CHR for pattern table accesses. It implements ppu.VRAM.
type PPUBus struct {
	vram       [0x800]uint8
	paletteRAM [32]uint8
	cart       CartridgeView
}

func newPPUBus() *PPUBus {
	return &PPUBus{}
}

// Read services a PPU-side read, recursing on address mod 0x4000 (§4.1).
func (pb *PPUBus) Read(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if pb.cart == nil {
			return 0
		}
		return pb.cart.CHRRead(address)
	case address < 0x3000:
		return pb.vram[pb.nametableIndex(address)]
	case address < 0x3F00:
		return pb.vram[pb.nametableIndex(address-0x1000)]
	default:
		return pb.paletteRAM[paletteIndex(address)]
	}
}

// Write services a PPU-side write, symmetric with Read. Writes to CHR
// are silently ignored unless the cartridge declares CHR-RAM, which the
// cartridge's mapper enforces in its WriteCHR.
func (pb *PPUBus) Write(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if pb.cart != nil {
			pb.cart.CHRWrite(address, value)
		}
	case address < 0x3000:
		pb.vram[pb.nametableIndex(address)] = value
	case address < 0x3F00:
		pb.vram[pb.nametableIndex(address-0x1000)] = value
	default:
		pb.paletteRAM[paletteIndex(address)] = value
	}
}

// nametableIndex maps a $2000-$2FFF address to its physical offset in
// the 2KB VRAM bank per the cartridge's horizontal/vertical mirroring.
func (pb *PPUBus) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	table := (address >> 10) & 3
	offset := address & 0x3FF

	if pb.cart != nil && pb.cart.Mirroring() == cartridge.MirrorVertical {
		if table == 1 || table == 3 {
			return 0x400 + offset
		}
		return offset
	}
	// Horizontal mirroring (and NROM's only other header-derived value,
	// four-screen, which this core has no extra VRAM to back and so
	// degrades to horizontal).
	if table >= 2 {
		return 0x400 + offset
	}
	return offset
}

// paletteIndex resolves a $3F00-$3FFF address to its 32-byte palette RAM
// slot, folding the four background-color mirror addresses (§3 invariant:
// ppu_read(a) == ppu_read(a-0x10) for a in {0x3F10,0x3F14,0x3F18,0x3F1C}).
func paletteIndex(address uint16) uint16 {
	idx := (address - 0x3F00) & 0x1F
	if idx == 0x10 || idx == 0x14 || idx == 0x18 || idx == 0x1C {
		idx &= 0x0F
	}
	return idx
}
