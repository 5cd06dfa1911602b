package pec

import "fmt"

// BitFieldWidth is the number of boolean decisions one BitField can hold.
const BitFieldWidth = 32

// BitField packs an ordered sequence of boolean decisions into one unsigned
// integer. Index assignment is fixed by the owning builder: reserved built-in
// decisions first, then user-selector decisions in configured order.
type BitField uint32

// Set stores v at bit index idx. An index outside [0, BitFieldWidth) is a
// programming-contract violation and panics; builders validate the admissible
// range (reserved bits plus configured selector count) at construction, so a
// panic here indicates a bug, not bad input.
func (b *BitField) Set(idx int, v bool) {
	if idx < 0 || idx >= BitFieldWidth {
		panic(fmt.Sprintf("pec: bit index %d outside field width %d", idx, BitFieldWidth))
	}
	if v {
		*b |= 1 << uint(idx)
	} else {
		*b &^= 1 << uint(idx)
	}
}

// Test reports the decision stored at bit index idx.
func (b BitField) Test(idx int) bool {
	if idx < 0 || idx >= BitFieldWidth {
		panic(fmt.Sprintf("pec: bit index %d outside field width %d", idx, BitFieldWidth))
	}
	return b&(1<<uint(idx)) != 0
}

// Reset clears every bit.
func (b *BitField) Reset() { *b = 0 }
