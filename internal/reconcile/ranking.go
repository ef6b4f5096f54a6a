package reconcile

import "chaos_backend/internal/model"

// MergeRanking builds the widget's rank order: previously ranked ids keep
// their stored order, then options never ranked before are appended in
// their declared order. Stored ids that no longer exist as options are
// dropped.
func MergeRanking(stored []uint, options []model.QuestionOption) []uint {
	known := make(map[uint]bool, len(options))
	for _, opt := range options {
		known[opt.ID] = true
	}

	merged := make([]uint, 0, len(options))
	ranked := make(map[uint]bool, len(stored))
	for _, id := range stored {
		if known[id] && !ranked[id] {
			merged = append(merged, id)
			ranked[id] = true
		}
	}
	for _, opt := range options {
		if !ranked[opt.ID] {
			merged = append(merged, opt.ID)
		}
	}
	return merged
}

// Reorder moves the item at from to to, shifting everything between them by
// one (adjacent-swap drag semantics). Dropping an item at its own index, or
// passing an out-of-range index, returns the input order unchanged.
func Reorder(ids []uint, from, to int) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)

	if from == to || from < 0 || to < 0 || from >= len(ids) || to >= len(ids) {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}
