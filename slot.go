// slot.go: the probe-slot array (C2). Each slot holds a cached hash, an
// index into the item pool, and an aging counter in [0,7] with {0: empty,
// 1: tombstone, 2..7: alive}.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

// slot is one entry of the probe array. Fields are grouped together
// (rather than split into parallel arrays) since this cache is
// single-threaded and has no false-sharing concerns to design around.
type slot struct {
	hash      uint32
	itemIndex uint32
	age       uint8
}

// slotTable owns the M-entry probe array, M a power of two.
type slotTable struct {
	slots []slot
	mask  uint32 // M - 1
}

// newSlotTable allocates a zero-filled table of m slots. m must already be
// a power of two; callers (Create/Reconfigure) are responsible for that.
func newSlotTable(m int) *slotTable {
	return &slotTable{
		slots: make([]slot, m),
		mask:  uint32(m - 1),
	}
}

// size returns M, the number of probe slots.
func (t *slotTable) size() int {
	return len(t.slots)
}

// home returns the ideal slot index for a given hash.
func (t *slotTable) home(hash uint32) uint32 {
	return hash & t.mask
}

// next advances a probe index by one, wrapping modulo M.
func (t *slotTable) next(i uint32) uint32 {
	return (i + 1) & t.mask
}

// isEmpty reports whether the slot at i holds no live item: both EMPTY and
// TOMBSTONE slots do. The probe and insertion walks stop only at EMPTY and
// continue past a TOMBSTONE, so they test ageEmpty directly rather than
// calling isEmpty.
func (t *slotTable) isEmpty(i uint32) bool {
	return t.slots[i].age <= ageTombstone
}

// isAlive reports whether the slot at i currently owns a live item.
func (t *slotTable) isAlive(i uint32) bool {
	return t.slots[i].age >= ageInitial
}

// at returns a pointer to the slot at i for in-place mutation.
func (t *slotTable) at(i uint32) *slot {
	return &t.slots[i]
}

// bumpAge increments the slot's age by one, capped at ageMax.
func (t *slotTable) bumpAge(i uint32) {
	s := &t.slots[i]
	if s.age < ageMax {
		s.age++
	}
}

// clear resets every slot to EMPTY, dropping all hash/item-index state.
func (t *slotTable) clear() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
}
