package canvas

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devikas9895151/Canva-page/internal/model"
)

func testStroke(owner string) model.Stroke {
	return model.Stroke{
		OwnerID: owner,
		Color:   "#e6194b",
		Width:   4,
		Tool:    model.ToolBrush,
		Points:  []model.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}},
	}
}

func TestRoom_CommitStroke(t *testing.T) {
	r := newRoom("r1")

	canonical := r.CommitStroke(testStroke("alice"))

	assert.NotEmpty(t, canonical.ID)
	assert.Equal(t, model.StatusActive, canonical.Status)
	assert.False(t, canonical.CreatedAt.IsZero())
	assert.Equal(t, "alice", canonical.OwnerID)

	total, active := r.StrokeCount()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, active)
}

func TestRoom_CommitStroke_KeepsClientID(t *testing.T) {
	r := newRoom("r1")

	s := testStroke("alice")
	s.ID = "client-chosen-id"

	canonical := r.CommitStroke(s)
	assert.Equal(t, "client-chosen-id", canonical.ID)
}

func TestRoom_UndoAll(t *testing.T) {
	r := newRoom("r1")

	const n = 5
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, r.CommitStroke(testStroke("alice")).ID)
	}

	// Undo N times: redo stack depth N, zero active strokes for alice.
	for i := n - 1; i >= 0; i-- {
		strokeID, err := r.Undo("alice")
		require.NoError(t, err)
		assert.Equal(t, ids[i], strokeID, "undo must pick newest first")
	}

	assert.Equal(t, n, r.RedoDepth("alice"))
	_, active := r.StrokeCount()
	assert.Equal(t, 0, active)
	assert.Empty(t, r.Snapshot()["alice"])
}

func TestRoom_UndoRedoRoundTrip(t *testing.T) {
	r := newRoom("r1")

	committed := r.CommitStroke(testStroke("alice"))

	strokeID, err := r.Undo("alice")
	require.NoError(t, err)
	assert.Equal(t, committed.ID, strokeID)

	restored, err := r.Redo("alice")
	require.NoError(t, err)

	assert.Equal(t, committed.ID, restored.ID)
	assert.Equal(t, committed.Points, restored.Points)
	assert.Equal(t, committed.Color, restored.Color)
	assert.Equal(t, committed.Width, restored.Width)
	assert.Equal(t, committed.Tool, restored.Tool)
	assert.Equal(t, model.StatusActive, restored.Status)

	// Redo does not re-append: history still holds exactly one stroke.
	total, active := r.StrokeCount()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, active)
}

func TestRoom_UndoNothingActive(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Room)
	}{
		{
			name:  "empty room",
			setup: func(r *Room) {},
		},
		{
			name: "only other user's strokes",
			setup: func(r *Room) {
				r.CommitStroke(testStroke("bob"))
			},
		},
		{
			name: "all own strokes already undone",
			setup: func(r *Room) {
				r.CommitStroke(testStroke("alice"))
				_, err := r.Undo("alice")
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRoom("r1")
			tt.setup(r)

			totalBefore, activeBefore := r.StrokeCount()
			depthBefore := r.RedoDepth("alice")

			_, err := r.Undo("alice")
			assert.ErrorIs(t, err, ErrNoActiveStroke)

			total, active := r.StrokeCount()
			assert.Equal(t, totalBefore, total)
			assert.Equal(t, activeBefore, active)
			assert.Equal(t, depthBefore, r.RedoDepth("alice"))
		})
	}
}

func TestRoom_RedoEmptyStack(t *testing.T) {
	r := newRoom("r1")
	r.CommitStroke(testStroke("alice"))

	_, err := r.Redo("alice")
	assert.ErrorIs(t, err, ErrNothingToRedo)

	total, active := r.StrokeCount()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, active)
}

func TestRoom_CommitClearsRedoStack(t *testing.T) {
	r := newRoom("r1")

	r.CommitStroke(testStroke("alice"))
	r.CommitStroke(testStroke("alice"))
	_, err := r.Undo("alice")
	require.NoError(t, err)
	_, err = r.Undo("alice")
	require.NoError(t, err)
	require.Equal(t, 2, r.RedoDepth("alice"))

	// Any new commit by alice invalidates her redo history, even if the
	// new stroke is unrelated.
	r.CommitStroke(testStroke("alice"))
	assert.Equal(t, 0, r.RedoDepth("alice"))

	_, err = r.Redo("alice")
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestRoom_CommitDoesNotClearOtherUsersRedo(t *testing.T) {
	r := newRoom("r1")

	r.CommitStroke(testStroke("alice"))
	_, err := r.Undo("alice")
	require.NoError(t, err)

	r.CommitStroke(testStroke("bob"))

	assert.Equal(t, 1, r.RedoDepth("alice"))
}

func TestRoom_UndoOnlyOwnStrokes(t *testing.T) {
	r := newRoom("r1")

	r.CommitStroke(testStroke("alice"))
	bobStroke := r.CommitStroke(testStroke("bob"))

	// bob's stroke is newer, but alice's undo must not touch it.
	strokeID, err := r.Undo("alice")
	require.NoError(t, err)
	assert.NotEqual(t, bobStroke.ID, strokeID)

	snap := r.Snapshot()
	assert.Len(t, snap["bob"], 1)
	assert.Empty(t, snap["alice"])
}

func TestRoom_Snapshot(t *testing.T) {
	r := newRoom("r1")

	a1 := r.CommitStroke(testStroke("alice"))
	b1 := r.CommitStroke(testStroke("bob"))
	a2 := r.CommitStroke(testStroke("alice"))
	_, err := r.Undo("bob")
	require.NoError(t, err)

	snap := r.Snapshot()

	require.Len(t, snap, 1, "undone strokes must not appear")
	require.Len(t, snap["alice"], 2)
	assert.Equal(t, a1.ID, snap["alice"][0].ID, "history order within owner")
	assert.Equal(t, a2.ID, snap["alice"][1].ID)

	for owner, strokes := range snap {
		for _, s := range strokes {
			assert.Equal(t, owner, s.OwnerID)
			assert.Equal(t, model.StatusActive, s.Status)
		}
	}
	_ = b1
}

func TestRoom_ConcurrentCommits(t *testing.T) {
	r := newRoom("r1")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.CommitStroke(testStroke("alice"))
	}()
	go func() {
		defer wg.Done()
		r.CommitStroke(testStroke("bob"))
	}()
	wg.Wait()

	total, active := r.StrokeCount()
	assert.Equal(t, 2, total, "no duplication, no loss")
	assert.Equal(t, 2, active)

	snap := r.Snapshot()
	assert.Len(t, snap["alice"], 1)
	assert.Len(t, snap["bob"], 1)
}

func TestRoom_ConcurrentUndoRedo(t *testing.T) {
	r := newRoom("r1")

	const perUser = 20
	users := []string{"alice", "bob", "carol"}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			for i := 0; i < perUser; i++ {
				r.CommitStroke(testStroke(u))
			}
			for i := 0; i < perUser; i++ {
				_, err := r.Undo(u)
				assert.NoError(t, err)
			}
			for i := 0; i < perUser/2; i++ {
				_, err := r.Redo(u)
				assert.NoError(t, err)
			}
		}(u)
	}
	wg.Wait()

	total, active := r.StrokeCount()
	assert.Equal(t, perUser*len(users), total)
	assert.Equal(t, perUser/2*len(users), active)
	for _, u := range users {
		assert.Equal(t, perUser/2, r.RedoDepth(u))
		assert.Len(t, r.Snapshot()[u], perUser/2)
	}
}
