package packet

import (
	"errors"

	"github.com/hasenbanck/korangar/internal/gameplay"
)

// ErrInventoryDesync is returned when the inventory Start/Items/End triad
// arrives out of order.
var ErrInventoryDesync = errors.New("inventory reassembly out of sync")

// Reassembly accumulates the items of one inventory snapshot. It is owned by
// a single session and only touched from that session's read goroutine.
type Reassembly struct {
	items  []gameplay.InventoryItem
	active bool
}

// Begin starts a new snapshot. If one was already in progress its partial
// list is discarded and ErrInventoryDesync is returned; the new snapshot is
// started either way.
func (st *Reassembly) Begin() error {
	wasActive := st.active
	st.items = nil
	st.active = true
	if wasActive {
		return ErrInventoryDesync
	}
	return nil
}

// Append adds items in arrival order.
func (st *Reassembly) Append(items []gameplay.InventoryItem) error {
	if !st.active {
		return ErrInventoryDesync
	}
	st.items = append(st.items, items...)
	return nil
}

// End finishes the snapshot and hands back the accumulated items.
func (st *Reassembly) End() ([]gameplay.InventoryItem, error) {
	if !st.active {
		return nil, ErrInventoryDesync
	}
	items := st.items
	if items == nil {
		items = []gameplay.InventoryItem{}
	}
	st.items = nil
	st.active = false
	return items, nil
}

// Active reports whether a snapshot is in progress.
func (st *Reassembly) Active() bool {
	return st.active
}

// Reset drops any partial snapshot.
func (st *Reassembly) Reset() {
	st.items = nil
	st.active = false
}
