// Package memory implements the DMG address-space router: it dispatches
// CPU reads and writes across the cartridge, VRAM/OAM (via the PPU), work
// RAM, echo RAM, HRAM, and the I/O register block, and drives OAM DMA.
package memory

import (
	"github.com/haldun/dmgo/internal/cart"
	"github.com/haldun/dmgo/internal/joypad"
	"github.com/haldun/dmgo/internal/ppu"
	"github.com/haldun/dmgo/internal/timer"
)

// Memory owns the cartridge and the peripherals and answers the CPU's
// entire 16-bit address space.
type Memory struct {
	cart cart.Cartridge

	wram [0x2000]byte // 0xC000-0xDFFF
	hram [0x7F]byte   // 0xFF80-0xFFFE

	ppu    *ppu.PPU
	timer  *timer.Timer
	joypad *joypad.Joypad

	ie    byte
	ifReg byte

	sb byte
	sc byte
	sw SerialSink

	dma       byte
	dmaActive bool
	dmaSrc    uint16
	dmaIndex  int

	bootROM     []byte
	bootEnabled bool
}

// SerialSink receives bytes written out the serial port; cmd/dmgo wires
// stdout (or a ring buffer) here for test-ROM diagnostics. It is not a link
// cable implementation: every write completes immediately.
type SerialSink interface {
	Write(p []byte) (int, error)
}

// New constructs a Memory with a ROM-only cartridge built from rom.
func New(rom []byte) *Memory {
	return NewWithCartridge(cart.NewCartridge(rom))
}

// NewWithCartridge wires a Memory to a caller-supplied cartridge
// implementation (useful for tests against a fake mapper).
func NewWithCartridge(c cart.Cartridge) *Memory {
	m := &Memory{cart: c}
	m.ppu = ppu.New(func(bit int) { m.raiseIF(bit) })
	m.timer = timer.New(func(bit int) { m.raiseIF(bit) })
	m.joypad = joypad.New(func(bit int) { m.raiseIF(bit) })
	return m
}

func (m *Memory) raiseIF(bit int) { m.ifReg |= 1 << uint(bit) }

// PPU exposes the owned PPU for framebuffer/rendering consumers.
func (m *Memory) PPU() *ppu.PPU { return m.ppu }

// Cart exposes the owned cartridge.
func (m *Memory) Cart() cart.Cartridge { return m.cart }

// Joypad exposes the owned joypad so the host can report button state.
func (m *Memory) Joypad() *joypad.Joypad { return m.joypad }

// IE returns the raw interrupt-enable register.
func (m *Memory) IE() byte { return m.ie }

// IF returns the raw interrupt-flag register, masked to the 5 used bits.
func (m *Memory) IF() byte { return m.ifReg & 0x1F }

// ClearIFBit clears a single IF bit; used by the CPU's interrupt servicing
// and nowhere else, keeping Memory the sole owner of IF storage.
func (m *Memory) ClearIFBit(bit uint) { m.ifReg &^= 1 << bit }

// SetSerialSink installs the diagnostic sink used by the entry point.
func (m *Memory) SetSerialSink(w SerialSink) { m.sw = w }

// SetBootROM overlays data (truncated/zero-padded to 256 bytes) at
// 0x0000-0x00FF until a non-zero write to 0xFF50 disables it.
func (m *Memory) SetBootROM(data []byte) {
	m.bootROM = nil
	m.bootEnabled = false
	if len(data) >= 0x100 {
		m.bootROM = make([]byte, 0x100)
		copy(m.bootROM, data[:0x100])
		m.bootEnabled = true
	}
}

// Read returns the byte visible to the CPU at addr, per the DMG memory map.
func (m *Memory) Read(addr uint16) byte {
	switch {
	case addr < 0x8000:
		if m.bootEnabled && addr < 0x0100 && len(m.bootROM) >= 0x100 {
			return m.bootROM[addr]
		}
		return m.cart.ReadROM(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return m.ppu.CPURead(addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return m.cart.ReadRAM(addr)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return m.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		return m.wram[(addr-0x2000)-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if m.dmaActive {
			return 0xFF
		}
		return m.ppu.CPURead(addr)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		return 0xFF
	case addr == 0xFF00:
		return m.joypad.ReadJOYP()
	case addr == 0xFF01:
		return m.sb
	case addr == 0xFF02:
		return 0x7E | (m.sc & 0x81)
	case addr == 0xFF04:
		return m.timer.DIV()
	case addr == 0xFF05:
		return m.timer.TIMA()
	case addr == 0xFF06:
		return m.timer.TMA()
	case addr == 0xFF07:
		return 0xF8 | m.timer.TAC()
	case addr == 0xFF0F:
		return 0xE0 | (m.ifReg & 0x1F)
	case addr >= 0xFF40 && addr <= 0xFF4B && addr != 0xFF46:
		return m.ppu.CPURead(addr)
	case addr == 0xFF46:
		return m.dma
	case addr == 0xFF50:
		return 0xFF
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return m.hram[addr-0xFF80]
	case addr == 0xFFFF:
		return m.ie
	default:
		return 0xFF
	}
}

// Write routes a CPU write per the DMG memory map. Writes to unmapped or
// read-only regions are silent no-ops, matching hardware.
func (m *Memory) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000:
		m.cart.WriteROM(addr, value)
	case addr >= 0x8000 && addr <= 0x9FFF:
		m.ppu.CPUWrite(addr, value)
	case addr >= 0xA000 && addr <= 0xBFFF:
		m.cart.WriteRAM(addr, value)
	case addr >= 0xC000 && addr <= 0xDFFF:
		m.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr <= 0xFDFF:
		m.wram[(addr-0x2000)-0xC000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if m.dmaActive {
			return
		}
		m.ppu.CPUWrite(addr, value)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		// unusable region, writes ignored
	case addr == 0xFF00:
		m.joypad.WriteJOYP(value)
	case addr == 0xFF01:
		m.sb = value
	case addr == 0xFF02:
		m.sc = value & 0x81
		if m.sc&0x80 != 0 {
			if m.sw != nil {
				_, _ = m.sw.Write([]byte{m.sb})
			}
			m.raiseIF(3) // Serial
			m.sc &^= 0x80
		}
	case addr == 0xFF04:
		m.timer.WriteDIV()
	case addr == 0xFF05:
		m.timer.WriteTIMA(value)
	case addr == 0xFF06:
		m.timer.WriteTMA(value)
	case addr == 0xFF07:
		m.timer.WriteTAC(value)
	case addr == 0xFF0F:
		m.ifReg = value & 0x1F
	case addr >= 0xFF40 && addr <= 0xFF4B && addr != 0xFF46:
		m.ppu.CPUWrite(addr, value)
	case addr == 0xFF46:
		m.dma = value
		m.dmaActive = true
		m.dmaSrc = uint16(value) << 8
		m.dmaIndex = 0
	case addr == 0xFF50:
		if value != 0x00 {
			m.bootEnabled = false
		}
	case addr >= 0xFF80 && addr <= 0xFFFE:
		m.hram[addr-0xFF80] = value
	case addr == 0xFFFF:
		m.ie = value
	default:
		// unmapped I/O, silently ignored
	}
}

// TickDots advances the PPU, timer and in-flight OAM DMA by the given number
// of dots (the Console passes 4 dots per CPU M-cycle).
func (m *Memory) TickDots(dots int) {
	for i := 0; i < dots; i++ {
		m.timer.Tick(1)
		m.ppu.Tick(1)
		m.stepDMA()
	}
}

func (m *Memory) stepDMA() {
	if !m.dmaActive {
		return
	}
	if m.dmaIndex < 0xA0 {
		v := m.Read(m.dmaSrc + uint16(m.dmaIndex))
		m.ppu.CPUWrite(0xFE00+uint16(m.dmaIndex), v)
		m.dmaIndex++
	}
	if m.dmaIndex >= 0xA0 {
		m.dmaActive = false
	}
}
