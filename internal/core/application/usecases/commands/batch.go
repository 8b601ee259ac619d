package commands

import "slices"

// FailedItem identifies a batch item that was rejected and why.
type FailedItem struct {
	ID     int64
	Reason error
}

// BatchResult reports a batch intake. Valid items are created together;
// rejected items do not affect their siblings.
type BatchResult struct {
	Created []int64
	Failed  []FailedItem
}

// FailedIDs returns the rejected ids in ascending order.
func (r BatchResult) FailedIDs() []int64 {
	ids := make([]int64, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.ID
	}
	slices.Sort(ids)
	return ids
}

// HasFailures reports whether any item was rejected.
func (r BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}
