// Package console wires the CPU to Memory and drives the fetch/execute/tick
// loop, deciding each cycle between servicing a pending interrupt and
// stepping the next instruction.
package console

import (
	"github.com/haldun/dmgo/internal/cart"
	"github.com/haldun/dmgo/internal/cpu"
	"github.com/haldun/dmgo/internal/memory"
)

// Console owns a CPU and the Memory it borrows, and exposes a single
// Cycle() entry point the host run loop calls in a tight loop.
type Console struct {
	CPU *cpu.CPU
	Mem *memory.Memory
}

// New constructs a Console around a ROM image, wired with a no-mapper
// cartridge (whatever mapper the header declares), and resets the CPU to
// the documented post-boot state.
func New(rom []byte) *Console {
	mem := memory.New(rom)
	c := cpu.New(mem)
	c.ResetNoBoot()
	return &Console{CPU: c, Mem: mem}
}

// NewWithCartridge wires a Console around a caller-constructed cartridge,
// useful for tests against a fake mapper.
func NewWithCartridge(cart cart.Cartridge) *Console {
	mem := memory.NewWithCartridge(cart)
	c := cpu.New(mem)
	c.ResetNoBoot()
	return &Console{CPU: c, Mem: mem}
}

// LoadBootROM overlays data at 0x0000-0x00FF and rewinds the CPU to 0x0000
// so it runs the boot handshake instead of jumping straight to 0x0100; the
// caller is responsible for supplying a valid 256-byte image.
func (co *Console) LoadBootROM(data []byte) {
	co.Mem.SetBootROM(data)
	co.CPU.SetPC(0x0000)
}

// SetButtons updates which joypad buttons are currently held (see the
// joypad.Right..joypad.Start constants) and wakes the CPU from STOP if it
// was parked waiting for input.
func (co *Console) SetButtons(mask byte) {
	co.Mem.Joypad().SetState(mask)
	co.CPU.Wake()
}

// SetSerialSink installs a diagnostic sink for the single-byte serial port.
func (co *Console) SetSerialSink(w memory.SerialSink) { co.Mem.SetSerialSink(w) }

// FrameReady reports whether the PPU has completed a frame since the last
// TakeFrame call.
func (co *Console) FrameReady() bool { return co.Mem.PPU().FrameReady() }

// TakeFrame returns the last completed frame of palette-resolved 2-bit
// shades and clears the ready flag.
func (co *Console) TakeFrame() [144][160]byte { return co.Mem.PPU().TakeFrame() }

// Cycle runs exactly one CPU instruction (or one interrupt service, or one
// idle HALT/STOP tick) and ticks every peripheral the corresponding number
// of dot clocks, returning the number of M-cycles the step consumed.
//
// Each cycle: read IE/IF from Memory; if IME is set and any enabled
// interrupt is pending, service it (5 M-cycles, fixed vector dispatch) via
// CPU.ServiceInterrupts, with Memory.ClearIFBit as the acknowledgement
// callback. Otherwise step one instruction. Either way, multiply the
// M-cycles consumed by 4 and tick Memory (PPU, Timer, OAM DMA) that many
// dot clocks — Memory's peripherals raise interrupts by OR-ing bits into
// Memory's own IF storage as they tick, so Cycle does not need to shuttle
// interrupt bits itself.
func (co *Console) Cycle() int {
	ie := co.Mem.IE()
	ifReg := co.Mem.IF()

	var mCycles int
	if co.CPU.IMEEnabled() && (ie&ifReg&0x1F) != 0 {
		mCycles = co.CPU.ServiceInterrupts(ie&ifReg, co.Mem.ClearIFBit)
	} else {
		mCycles = co.CPU.Step(ie, ifReg)
	}

	co.Mem.TickDots(mCycles * 4)
	return mCycles
}
