package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/services"
)

const testJournal = `# 2026/03/01
- [ ] ship report @3/2/26 #work

# 2026/03/02
- [ ] alpha #work
- morning note
* team sync
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.md")
	if err := os.WriteFile(path, []byte(testJournal), 0o644); err != nil {
		t.Fatalf("write journal: %v", err)
	}

	svc := services.NewJournalService(journal.NewStore(path), config.DefaultConfig())
	return NewServer(svc), path
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil {
		t.Fatal("nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func request(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func TestNewServer(t *testing.T) {
	server, _ := newTestServer(t)
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.IsRunning() {
		t.Error("server should not be running before Start()")
	}
}

func TestServer_handleGetDay(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleGetDay(context.Background(), request(map[string]interface{}{
		"date": "2026/03/02",
	}))
	if err != nil {
		t.Fatalf("handleGetDay() error = %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, `"2026-03-02"`) {
		t.Errorf("missing date in output: %s", text)
	}
	// The day's own entries plus the @date projection from 03/01.
	for _, want := range []string{"alpha #work", "morning note", "team sync", "ship report"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in output: %s", want, text)
		}
	}
	if !strings.Contains(text, `"scheduled"`) {
		t.Errorf("projection not marked as scheduled: %s", text)
	}
}

func TestServer_handleGetDay_BadDate(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleGetDay(context.Background(), request(map[string]interface{}{
		"date": "not-a-date",
	}))
	if err != nil {
		t.Fatalf("handleGetDay() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unparseable date")
	}
}

func TestServer_handleAddEntry(t *testing.T) {
	server, path := newTestServer(t)

	result, err := server.handleAddEntry(context.Background(), request(map[string]interface{}{
		"content": "call dentist #errand",
		"type":    "task",
		"date":    "2026/03/05",
	}))
	if err != nil {
		t.Fatalf("handleAddEntry() error = %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, `"2026-03-05"`) {
		t.Errorf("unexpected landing date: %s", text)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if !strings.Contains(string(data), "# 2026/03/05\n- [ ] call dentist #errand\n") {
		t.Errorf("entry not persisted:\n%s", data)
	}
}

func TestServer_handleAddEntry_MissingContent(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleAddEntry(context.Background(), request(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleAddEntry() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing content")
	}
}

func TestServer_handleQueryEntries(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleQueryEntries(context.Background(), request(map[string]interface{}{
		"query": "#work",
	}))
	if err != nil {
		t.Fatalf("handleQueryEntries() error = %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, `"count": 2`) {
		t.Errorf("unexpected count: %s", text)
	}
}

func TestServer_handleQueryEntries_InvalidQuery(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleQueryEntries(context.Background(), request(map[string]interface{}{
		"query": "@befor:1/15",
	}))
	if err != nil {
		t.Fatalf("handleQueryEntries() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for malformed query")
	}
}

func TestServer_Stop(t *testing.T) {
	server, _ := newTestServer(t)

	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
