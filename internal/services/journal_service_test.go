package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/domain"
)

const serviceJournal = `# 2026/03/01
- [ ] standup @every-weekday #work
- [ ] ship report @3/2/26 #work

# 2026/03/02
- [ ] alpha #work
- morning note
- [x] beta #home
* team sync
`

// 2026-03-02 is a Monday.
func newTestService(t *testing.T) *JournalService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.md")
	require.NoError(t, os.WriteFile(path, []byte(serviceJournal), 0o644))

	cfg := config.DefaultConfig()
	cfg.FavoriteTags["1"] = "work"
	cfg.SavedFilters["open"] = "!tasks/incomplete"

	svc := NewJournalService(journal.NewStore(path), cfg)
	svc.now = func() time.Time { return domain.Date(2026, time.March, 2) }
	return svc
}

func TestJournalService_AddEntry(t *testing.T) {
	svc := newTestService(t)

	t.Run("appends to today by default", func(t *testing.T) {
		added, err := svc.AddEntry(AddEntryRequest{Content: "call dentist", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.Equal(t, domain.Date(2026, time.March, 2), added.Date)
		assert.Equal(t, 4, added.LineIndex)
	})

	t.Run("expands favorites and pins relative dates", func(t *testing.T) {
		added, err := svc.AddEntry(AddEntryRequest{Content: "review @tomorrow #1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.Equal(t, "review @03/03 #work", added.Content)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := svc.AddEntry(AddEntryRequest{Content: "   "})
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("targets an explicit date", func(t *testing.T) {
		added, err := svc.AddEntry(AddEntryRequest{
			Content: "retro notes",
			Kind:    domain.KindNote,
			Date:    domain.Date(2026, time.March, 5),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Date(2026, time.March, 5), added.Date)
		assert.Equal(t, 0, added.LineIndex)
	})
}

func TestJournalService_Query(t *testing.T) {
	svc := newTestService(t)

	t.Run("matches tags", func(t *testing.T) {
		entries, err := svc.Query("#home")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "beta #home", entries[0].Content)
	})

	t.Run("expands saved filters", func(t *testing.T) {
		entries, err := svc.Query("$open #work")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.False(t, e.Completed)
		}
	})

	t.Run("unknown saved filter is an error", func(t *testing.T) {
		_, err := svc.Query("$nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "$nope")
	})

	t.Run("malformed token fails closed", func(t *testing.T) {
		_, err := svc.Query("@befor:1/15")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid filter")
	})
}

func TestJournalService_Tags(t *testing.T) {
	svc := newTestService(t)

	tags, err := svc.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "work"}, tags)
}

func TestJournalService_Day(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.Day(domain.Date(2026, time.March, 2))
	require.NoError(t, err)

	require.Len(t, view.Entries, 4)
	assert.Equal(t, "alpha #work", view.Entries[0].Content)
	assert.Equal(t, 0, view.Entries[0].LineIndex)
	assert.True(t, view.Entries[0].Editable())

	// Monday picks up the weekday recurrence and the @date projection.
	require.Len(t, view.Projected, 2)
	assert.Equal(t, domain.SourceRecurring, view.Projected[0].Source)
	assert.Equal(t, domain.SourceLater, view.Projected[1].Source)
}

func TestJournalService_TodayReminders(t *testing.T) {
	svc := newTestService(t)

	r, err := svc.TodayReminders()
	require.NoError(t, err)

	require.Len(t, r.Events, 1)
	assert.Equal(t, "team sync", r.Events[0].Content)

	// Open tasks: alpha plus both projections; beta is completed.
	require.Len(t, r.Due, 3)
}
