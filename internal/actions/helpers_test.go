package actions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/session"
)

// 2026-03-02 is a Monday.
const sampleJournal = `# 2026/03/01
- [ ] standup @every-weekday #work
- [ ] ship report @3/2/26 #work

# 2026/03/02
- [ ] alpha #work
- morning note
- [x] beta #home
* team sync
`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleJournal), 0o644))

	viewed := day(2026, time.March, 2)
	s, err := session.New(journal.NewStore(path), viewed)
	require.NoError(t, err)
	s.Now = func() time.Time { return viewed }
	require.NoError(t, s.RefreshProjected())
	return s
}

func journalText(t *testing.T, s *session.Session) string {
	t.Helper()
	data, err := os.ReadFile(s.Store.Path())
	require.NoError(t, err)
	return string(data)
}

func entryContentAt(t *testing.T, s *session.Session, date time.Time, lineIndex int) string {
	t.Helper()
	content, ok := s.Store.EntryContent(date, lineIndex)
	require.True(t, ok, "no entry at %s line %d", date.Format("2006/01/02"), lineIndex)
	return content
}
