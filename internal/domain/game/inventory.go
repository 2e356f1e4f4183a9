package game

import "idleverse/internal/domain/content"

// Inventory is a capacity-bounded multiset. Capacity bounds the number
// of distinct item stacks; stacking onto a held item always succeeds.
type Inventory struct {
	Capacity int                    `json:"capacity"`
	Items    map[content.ItemID]int `json:"items,omitempty"`
}

func (inv Inventory) Count(item content.ItemID) int {
	return inv.Items[item]
}

func (inv Inventory) Stacks() int {
	return len(inv.Items)
}

// CanAdd reports whether one or more of the item could be stored right
// now: either a stack already exists or a slot is free.
func (inv Inventory) CanAdd(item content.ItemID) bool {
	if _, held := inv.Items[item]; held {
		return true
	}
	return len(inv.Items) < inv.Capacity
}

// Add stores the quantity, returning false without mutating when the
// item would need a new stack and the inventory is full.
func (inv *Inventory) Add(item content.ItemID, qty int) bool {
	if qty <= 0 || item == "" {
		return false
	}
	if !inv.CanAdd(item) {
		return false
	}
	if inv.Items == nil {
		inv.Items = map[content.ItemID]int{}
	}
	inv.Items[item] += qty
	return true
}

// Remove takes the quantity, returning false without mutating when the
// held count is short. Emptied stacks free their slot.
func (inv *Inventory) Remove(item content.ItemID, qty int) bool {
	if qty <= 0 || item == "" {
		return false
	}
	held := inv.Items[item]
	if held < qty {
		return false
	}
	if held == qty {
		delete(inv.Items, item)
		return true
	}
	inv.Items[item] = held - qty
	return true
}

func (inv Inventory) HasAll(required map[content.ItemID]int) bool {
	for item, qty := range required {
		if inv.Items[item] < qty {
			return false
		}
	}
	return true
}
