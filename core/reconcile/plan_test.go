package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPlan(t *testing.T) {
	plan := &Plan[int, item]{Changes: []Change[int, item]{
		{Key: 1, Kind: KindInsert},
		{Key: 2, Kind: KindUnchanged},
		{Key: 3, Kind: KindUpdate},
		{Key: 4, Kind: KindInsert},
	}}

	t.Run("FailureDoesNotStopLoop", func(t *testing.T) {
		var order []int
		applier := ApplierFunc[int, item](func(ctx context.Context, c Change[int, item]) error {
			order = append(order, c.Key)
			if c.Key == 3 {
				return errors.New("write failed")
			}
			return nil
		})

		result := ApplyPlan(context.Background(), plan, applier)

		assert.Equal(t, []int{1, 3, 4}, order, "applied in plan order, unchanged skipped")
		assert.Equal(t, 2, result.Applied)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, result.Failures, 1)
		assert.Equal(t, 3, result.Failures[0].Key)
		assert.False(t, result.Interrupted)
	})

	t.Run("CancellationLetsInFlightFinish", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var order []int
		applier := ApplierFunc[int, item](func(ctx context.Context, c Change[int, item]) error {
			order = append(order, c.Key)
			cancel()
			return nil
		})

		result := ApplyPlan(ctx, plan, applier)

		assert.Equal(t, []int{1}, order)
		assert.Equal(t, 1, result.Applied)
		assert.Zero(t, result.Skipped, "unchanged entities after cancellation are not counted")
		assert.True(t, result.Interrupted)
	})
}

func TestDiffHelpers(t *testing.T) {
	var d Diff
	Value(&d, "name", "a", "a")
	Nullable[int](&d, "atk", nil, nil)
	assert.Empty(t, d)

	Value(&d, "name", "a", "b")
	Nullable(&d, "atk", nil, ptr(1000))
	Nullable(&d, "def", ptr(0), ptr(100))
	Deep(&d, "sets", []string{"LOB"}, []string{"MRD"})

	assert.Equal(t, Diff{
		"name: fetched=a stored=b",
		"atk: fetched=null stored=1000",
		"def: fetched=0 stored=100",
		"sets: changed",
	}, d)
}
