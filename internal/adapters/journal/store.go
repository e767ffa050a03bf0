// Package journal persists entries in a single plain-text file split into
// day sections. Each section starts with a "# YYYY/MM/DD" header; sections
// are kept in chronological order and empty days are dropped. Lines the
// parser does not recognize survive every rewrite byte for byte.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/ports"
)

// Store reads and writes day sections of one journal file.
type Store struct {
	path string
}

var _ ports.JournalStore = (*Store)(nil)

// NewStore creates a store for the journal file at path. The file is
// created lazily on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the journal file location.
func (s *Store) Path() string {
	return s.path
}

func dayHeader(date time.Time) string {
	return "# " + date.Format(domain.DayFormat)
}

// ParseDayHeader parses a "# YYYY/MM/DD" line. Anything after the date is
// ignored, so headers may carry trailing annotations.
func ParseDayHeader(line string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(line, "# ")
	if !ok || len(rest) < len(domain.DayFormat) {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(domain.DayFormat, rest[:len(domain.DayFormat)], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (s *Store) loadJournal() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read journal: %w", err)
	}
	return string(data), nil
}

func (s *Store) saveJournal(content string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}

// LoadDay returns the raw text of one day's section, without its header.
func (s *Store) LoadDay(date time.Time) (string, error) {
	journal, err := s.loadJournal()
	if err != nil {
		return "", err
	}
	return ExtractDayContent(journal, date), nil
}

// SaveDay replaces one day's section with content, inserting the section
// in date order if it is new and removing it if content is empty.
func (s *Store) SaveDay(date time.Time, content string) error {
	journal, err := s.loadJournal()
	if err != nil {
		return err
	}
	return s.saveJournal(UpdateDayContent(journal, date, content))
}

// LoadDayLines reads and parses one day's section.
func (s *Store) LoadDayLines(date time.Time) ([]domain.Line, error) {
	content, err := s.LoadDay(date)
	if err != nil {
		return nil, err
	}
	return domain.ParseLines(content), nil
}

// SaveDayLines serializes lines back into the day's section.
func (s *Store) SaveDayLines(date time.Time, lines []domain.Line) error {
	return s.SaveDay(date, domain.SerializeLines(lines))
}

// MutateEntry loads a day, applies f to the entry at lineIndex and saves
// if the entry exists. Raw lines and out-of-range indexes are not entries;
// the file is left untouched for those.
func (s *Store) MutateEntry(date time.Time, lineIndex int, f func(*domain.EntryLine)) (bool, error) {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return false, err
	}
	entry := domain.EntryAt(lines, lineIndex)
	if entry == nil {
		return false, nil
	}
	f(entry)
	if err := s.SaveDayLines(date, lines); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateEntryContent rewrites the content of the entry at lineIndex.
func (s *Store) UpdateEntryContent(date time.Time, lineIndex int, content string) (bool, error) {
	return s.MutateEntry(date, lineIndex, func(e *domain.EntryLine) {
		e.Content = content
	})
}

// ToggleComplete flips the completion state of the task at lineIndex.
func (s *Store) ToggleComplete(date time.Time, lineIndex int) error {
	_, err := s.MutateEntry(date, lineIndex, func(e *domain.EntryLine) {
		e.ToggleComplete()
	})
	return err
}

// CycleEntryType advances the entry at lineIndex through task, note and
// event. Returns the new kind when the entry exists.
func (s *Store) CycleEntryType(date time.Time, lineIndex int) (domain.EntryKind, bool, error) {
	var kind domain.EntryKind
	ok, err := s.MutateEntry(date, lineIndex, func(e *domain.EntryLine) {
		e.Kind = e.Kind.Cycle()
		e.Completed = false
		kind = e.Kind
	})
	return kind, ok, err
}

// EntryKindAt returns the kind of the entry at lineIndex, defaulting to
// task when the entry does not exist.
func (s *Store) EntryKindAt(date time.Time, lineIndex int) domain.EntryKind {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return domain.KindTask
	}
	if e := domain.EntryAt(lines, lineIndex); e != nil {
		return e.Kind
	}
	return domain.KindTask
}

// EntryContent returns the content of the entry at lineIndex.
func (s *Store) EntryContent(date time.Time, lineIndex int) (string, bool) {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return "", false
	}
	if e := domain.EntryAt(lines, lineIndex); e != nil {
		return e.Content, true
	}
	return "", false
}

// DeleteEntry removes the line at lineIndex, if present.
func (s *Store) DeleteEntry(date time.Time, lineIndex int) error {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return err
	}
	if lineIndex < 0 || lineIndex >= len(lines) {
		return s.SaveDayLines(date, lines)
	}
	lines = append(lines[:lineIndex], lines[lineIndex+1:]...)
	return s.SaveDayLines(date, lines)
}

// AppendEntry adds an entry to the end of the day's section and returns
// its line index.
func (s *Store) AppendEntry(date time.Time, data domain.EntryData) (int, error) {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return 0, err
	}
	lines = append(lines, &domain.EntryLine{EntryData: data})
	if err := s.SaveDayLines(date, lines); err != nil {
		return 0, err
	}
	return len(lines) - 1, nil
}

// InsertLine splices line in at lineIndex, clamped to the section length.
func (s *Store) InsertLine(date time.Time, lineIndex int, line domain.Line) error {
	lines, err := s.LoadDayLines(date)
	if err != nil {
		return err
	}
	if lineIndex < 0 {
		lineIndex = 0
	}
	if lineIndex > len(lines) {
		lineIndex = len(lines)
	}
	lines = append(lines[:lineIndex], append([]domain.Line{line}, lines[lineIndex:]...)...)
	return s.SaveDayLines(date, lines)
}

// ExtractDayContent returns the body of one day's section, without its
// header and trailing blank lines. A missing day yields the empty string.
func ExtractDayContent(journal string, date time.Time) string {
	header := dayHeader(date)
	startIdx := strings.Index(journal, header)
	if startIdx < 0 {
		return ""
	}

	afterHeader := journal[startIdx+len(header):]
	afterHeader = strings.TrimPrefix(afterHeader, "\n")
	if endIdx, ok := findNextDayHeader(afterHeader); ok {
		return strings.TrimRight(afterHeader[:endIdx], " \t\r\n")
	}
	return strings.TrimRight(afterHeader, " \t\r\n")
}

// findNextDayHeader returns the byte offset of the first day header after
// the first line of content.
func findNextDayHeader(content string) (int, bool) {
	bytePos := 0
	firstLine := true

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSuffix(line, "\r")
		if !firstLine {
			if _, ok := ParseDayHeader(trimmed); ok {
				return bytePos, true
			}
		}
		firstLine = false
		bytePos += len(line) + 1
	}
	return 0, false
}

// UpdateDayContent splices newContent into the journal as the section for
// date: replacing the existing section, removing it when the content is
// empty, or inserting a new section in chronological order.
func UpdateDayContent(journal string, date time.Time, newContent string) string {
	header := dayHeader(date)
	contentIsEmpty := strings.TrimSpace(newContent) == ""

	startIdx := strings.Index(journal, header)
	if startIdx >= 0 {
		before, after := splitAroundDay(journal, startIdx, header)
		if contentIsEmpty {
			return removeDay(before, after)
		}
		return replaceDay(before, header, newContent, after)
	}
	if contentIsEmpty {
		return journal
	}
	return insertNewDay(journal, date, header, newContent)
}

func splitAroundDay(journal string, startIdx int, header string) (string, string) {
	before := journal[:startIdx]
	afterHeader := journal[startIdx+len(header):]
	afterHeader = strings.TrimPrefix(afterHeader, "\n")

	if idx, ok := findNextDayHeader(afterHeader); ok {
		return before, afterHeader[idx:]
	}
	return before, ""
}

func removeDay(before, after string) string {
	result := strings.TrimRight(before, " \t\r\n")
	if result != "" && after != "" {
		result += "\n\n"
	}
	result += strings.TrimLeft(after, " \t\r\n")
	if result == "" {
		return result
	}
	return strings.TrimRight(result, " \t\r\n") + "\n"
}

func replaceDay(before, header, content, after string) string {
	joined := before + header + "\n" + strings.TrimRight(content, " \t\r\n") + "\n\n" + after
	return strings.TrimRight(joined, " \t\r\n") + "\n"
}

func insertNewDay(journal string, date time.Time, header, content string) string {
	newDay := header + "\n" + strings.TrimRight(content, " \t\r\n")

	if pos, ok := findInsertionPoint(journal, date); ok {
		before := strings.TrimRight(journal[:pos], " \t\r\n")
		after := strings.TrimLeft(journal[pos:], " \t\r\n")
		if before == "" {
			return strings.TrimRight(newDay+"\n"+after, " \t\r\n") + "\n"
		}
		return strings.TrimRight(before+"\n\n"+newDay+"\n"+after, " \t\r\n") + "\n"
	}

	result := strings.TrimRight(journal, " \t\r\n")
	if result != "" {
		result += "\n\n"
	}
	return result + newDay + "\n"
}

// findInsertionPoint locates the start of the first day section dated
// after date, so new sections keep the file chronological.
func findInsertionPoint(journal string, date time.Time) (int, bool) {
	for _, line := range strings.Split(journal, "\n") {
		trimmed := strings.TrimSuffix(line, "\r")
		if existing, ok := ParseDayHeader(trimmed); ok && existing.After(date) {
			return strings.Index(journal, line), true
		}
	}
	return 0, false
}

// ScanDayRange reports which days in [start, end] hold entries. Days whose
// sections contain only blank or raw lines are omitted.
func (s *Store) ScanDayRange(start, end time.Time) (map[time.Time]ports.DayInfo, error) {
	journal, err := s.loadJournal()
	if err != nil {
		return nil, err
	}

	result := make(map[time.Time]ports.DayInfo)
	var currentDate time.Time
	var current ports.DayInfo
	haveDay := false

	flush := func() {
		if haveDay && current.HasEntries && !currentDate.Before(start) && !currentDate.After(end) {
			result[currentDate] = current
		}
	}

	for _, line := range strings.Split(journal, "\n") {
		trimmed := strings.TrimSuffix(line, "\r")
		if date, ok := ParseDayHeader(trimmed); ok {
			flush()
			currentDate = date
			current = ports.DayInfo{}
			haveDay = true
			continue
		}
		if !haveDay {
			continue
		}
		body := strings.TrimLeft(trimmed, " \t")
		switch {
		case strings.HasPrefix(body, "- [ ] "):
			current.HasEntries = true
			current.HasIncompleteTasks = true
		case strings.HasPrefix(body, "* "):
			current.HasEntries = true
			current.HasEvents = true
		case strings.HasPrefix(body, "- [x] "), strings.HasPrefix(body, "- [X] "):
			current.HasEntries = true
		case strings.HasPrefix(body, "- ") && !strings.HasPrefix(body, "- ["):
			current.HasEntries = true
		}
	}
	flush()

	return result, nil
}
