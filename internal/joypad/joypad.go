// Package joypad implements the two-row button matrix exposed at 0xFF00.
package joypad

// InterruptRequester raises a bit in the owning Memory's IF register; bit 4
// (Joypad) is the only bit this package ever raises.
type InterruptRequester func(bit int)

const joypadInterruptBit = 4

// Button bitmasks for SetState; a set bit means the button is held.
const (
	Right = 1 << iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad tracks which buttons are currently held and the last row-select
// written to 0xFF00, raising a Joypad interrupt on any 1->0 edge of the
// selected, active-low nibble.
type Joypad struct {
	selectBits byte
	pressed    byte
	lastNibble byte

	req InterruptRequester
}

// New constructs a Joypad that raises interrupts through req.
func New(req InterruptRequester) *Joypad {
	j := &Joypad{lastNibble: 0x0F, req: req}
	return j
}

// ReadJOYP returns the 0xFF00 byte: bits 7-6 always read 1, bits 5-4
// reflect the last selection write, bits 3-0 are the active-low button
// state for whichever row(s) are selected.
func (j *Joypad) ReadJOYP() byte {
	return 0xC0 | (j.selectBits & 0x30) | j.nibble()
}

// WriteJOYP updates the row selection (bits 5-4 only) and re-evaluates the
// interrupt edge, since changing selection can itself expose a pressed
// button as a falling edge.
func (j *Joypad) WriteJOYP(v byte) {
	j.selectBits = v & 0x30
	j.checkEdge()
}

// SetState replaces the full pressed-button mask (see the Right..Start
// constants) and re-evaluates the interrupt edge.
func (j *Joypad) SetState(mask byte) {
	j.pressed = mask
	j.checkEdge()
}

func (j *Joypad) nibble() byte {
	n := byte(0x0F)
	if j.selectBits&0x10 == 0 { // P14 low selects D-pad
		if j.pressed&Right != 0 {
			n &^= 0x01
		}
		if j.pressed&Left != 0 {
			n &^= 0x02
		}
		if j.pressed&Up != 0 {
			n &^= 0x04
		}
		if j.pressed&Down != 0 {
			n &^= 0x08
		}
	}
	if j.selectBits&0x20 == 0 { // P15 low selects buttons
		if j.pressed&A != 0 {
			n &^= 0x01
		}
		if j.pressed&B != 0 {
			n &^= 0x02
		}
		if j.pressed&Select != 0 {
			n &^= 0x04
		}
		if j.pressed&Start != 0 {
			n &^= 0x08
		}
	}
	return n
}

func (j *Joypad) checkEdge() {
	newNibble := j.nibble()
	falling := j.lastNibble &^ newNibble
	if falling != 0 && j.req != nil {
		j.req(joypadInterruptBit)
	}
	j.lastNibble = newNibble
}
