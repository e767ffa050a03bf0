package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/daybook/internal/domain"
)

func TestEditUndoRedo(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	entry := domain.EntryAt(s.Lines, 0)
	require.NotNil(t, entry)
	entry.Content = "alpha revised #work"
	require.NoError(t, s.Save())

	msg, err := ex.Execute(&EditEntry{Target: EditTarget{
		Location:        domain.DailyLocation{LineIndex: 0},
		OriginalContent: "alpha #work",
		NewContent:      "alpha revised #work",
	}}, s)
	require.NoError(t, err)
	assert.Empty(t, msg)

	msg, err = ex.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, "Reverted edit", msg)
	assert.Equal(t, "alpha #work", entryContentAt(t, s, s.CurrentDate, 0))
	assert.Equal(t, "alpha #work", domain.EntryAt(s.Lines, 0).Content)

	msg, err = ex.Redo(s)
	require.NoError(t, err)
	assert.Equal(t, "Edited entry", msg)
	assert.Equal(t, "alpha revised #work", entryContentAt(t, s, s.CurrentDate, 0))
}

func TestCycleTypeUndoRestoresCompletion(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	msg, err := ex.Execute(NewCycle(
		CycleTarget{Location: domain.DailyLocation{LineIndex: 0}, OriginalKind: domain.KindTask},
		CycleTarget{Location: domain.DailyLocation{LineIndex: 2}, OriginalKind: domain.KindTask, OriginalCompleted: true},
	), s)
	require.NoError(t, err)
	// Type cycling is visible on screen and stays quiet.
	assert.Empty(t, msg)

	assert.Equal(t, domain.KindNote, domain.EntryAt(s.Lines, 0).Kind)
	assert.Equal(t, domain.KindNote, domain.EntryAt(s.Lines, 2).Kind)
	assert.False(t, domain.EntryAt(s.Lines, 2).Completed)

	msg, err = ex.Undo(s)
	require.NoError(t, err)
	assert.Empty(t, msg)

	assert.Equal(t, domain.KindTask, domain.EntryAt(s.Lines, 0).Kind)
	beta := domain.EntryAt(s.Lines, 2)
	assert.Equal(t, domain.KindTask, beta.Kind)
	assert.True(t, beta.Completed)
	assert.Contains(t, journalText(t, s), "- [x] beta #home")
}

func TestAppendTagUndoRedo(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	msg, err := ex.Execute(&AppendTag{
		Targets: []TagTarget{{
			Location:        domain.DailyLocation{LineIndex: 0},
			OriginalContent: "alpha #work",
		}},
		Tag: "urgent",
	}, s)
	require.NoError(t, err)
	assert.Equal(t, "Added #urgent", msg)
	assert.Equal(t, "alpha #work #urgent", entryContentAt(t, s, s.CurrentDate, 0))

	msg, err = ex.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, "Removed #urgent", msg)
	assert.Equal(t, "alpha #work", entryContentAt(t, s, s.CurrentDate, 0))

	msg, err = ex.Redo(s)
	require.NoError(t, err)
	assert.Equal(t, "Added #urgent", msg)
	assert.Equal(t, "alpha #work #urgent", entryContentAt(t, s, s.CurrentDate, 0))
}

func TestAppendTagBatchMessage(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	msg, err := ex.Execute(&AppendTag{
		Targets: []TagTarget{
			{Location: domain.DailyLocation{LineIndex: 0}, OriginalContent: "alpha #work"},
			{Location: domain.DailyLocation{LineIndex: 2}, OriginalContent: "beta #home"},
		},
		Tag: "review",
	}, s)
	require.NoError(t, err)
	assert.Equal(t, "Added #review to 2 entries", msg)
	assert.Equal(t, "alpha #work #review", entryContentAt(t, s, s.CurrentDate, 0))
	assert.Equal(t, "beta #home #review", entryContentAt(t, s, s.CurrentDate, 2))

	msg, err = ex.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, "Removed #review from 2 entries", msg)
	assert.Equal(t, "alpha #work", entryContentAt(t, s, s.CurrentDate, 0))
	assert.Equal(t, "beta #home", entryContentAt(t, s, s.CurrentDate, 2))
}

func TestRemoveLastTagUndo(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	msg, err := ex.Execute(&RemoveLastTag{
		Targets: []TagTarget{{
			Location:        domain.DailyLocation{LineIndex: 0},
			OriginalContent: "alpha #work",
		}},
	}, s)
	require.NoError(t, err)
	assert.Equal(t, "Removed tag", msg)
	assert.Equal(t, "alpha", entryContentAt(t, s, s.CurrentDate, 0))

	msg, err = ex.Undo(s)
	require.NoError(t, err)
	assert.Equal(t, "Restored tag", msg)
	assert.Equal(t, "alpha #work", entryContentAt(t, s, s.CurrentDate, 0))
}

func TestRemoveTagWithoutTrailingTagsFails(t *testing.T) {
	s := newTestSession(t)
	ex := NewExecutor()

	_, err := ex.Execute(&RemoveLastTag{
		Targets: []TagTarget{{
			Location:        domain.DailyLocation{LineIndex: 1},
			OriginalContent: "morning note",
		}},
	}, s)
	assert.Error(t, err)
	assert.False(t, ex.CanUndo())
	assert.Equal(t, "morning note", entryContentAt(t, s, s.CurrentDate, 1))
}
