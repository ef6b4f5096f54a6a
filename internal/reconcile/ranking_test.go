package reconcile

import (
	"chaos_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rankOptions(ids ...uint) []model.QuestionOption {
	opts := make([]model.QuestionOption, 0, len(ids))
	for i, id := range ids {
		opts = append(opts, model.QuestionOption{
			BaseModel: model.BaseModel{ID: id},
			Order:     i,
		})
	}
	return opts
}

func TestMergeRankingKeepsStoredOrder(t *testing.T) {
	merged := MergeRanking([]uint{3, 1}, rankOptions(1, 2, 3))
	assert.Equal(t, []uint{3, 1, 2}, merged)
}

func TestMergeRankingAppendsNewOptionsInDeclaredOrder(t *testing.T) {
	// Options 4 and 5 were added after the ranking was stored.
	merged := MergeRanking([]uint{2, 1}, rankOptions(1, 2, 4, 5))
	assert.Equal(t, []uint{2, 1, 4, 5}, merged)
}

func TestMergeRankingDropsRemovedOptions(t *testing.T) {
	// Option 3 no longer exists.
	merged := MergeRanking([]uint{3, 1, 2}, rankOptions(1, 2))
	assert.Equal(t, []uint{1, 2}, merged)
}

func TestMergeRankingNoStoredAnswer(t *testing.T) {
	merged := MergeRanking(nil, rankOptions(1, 2, 3))
	assert.Equal(t, []uint{1, 2, 3}, merged)
}

func TestReorderMovesForward(t *testing.T) {
	got := Reorder([]uint{1, 2, 3, 4}, 0, 2)
	assert.Equal(t, []uint{2, 3, 1, 4}, got)
}

func TestReorderMovesBackward(t *testing.T) {
	got := Reorder([]uint{1, 2, 3, 4}, 3, 1)
	assert.Equal(t, []uint{1, 4, 2, 3}, got)
}

func TestReorderSamePositionIsIdentity(t *testing.T) {
	in := []uint{1, 2, 3}
	got := Reorder(in, 1, 1)
	assert.Equal(t, in, got)

	// The input slice is never mutated.
	got[0] = 99
	assert.Equal(t, []uint{1, 2, 3}, in)
}

func TestReorderOutOfRangeIsIdentity(t *testing.T) {
	in := []uint{1, 2, 3}
	assert.Equal(t, in, Reorder(in, -1, 2))
	assert.Equal(t, in, Reorder(in, 0, 3))
	assert.Equal(t, in, Reorder(in, 5, 0))
}
