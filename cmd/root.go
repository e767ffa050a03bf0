// Package cmd provides the CLI commands for the daybook application.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/adapters/calendar"
	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/adapters/notification"
	"github.com/xvierd/daybook/internal/adapters/tui"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/services"
	"github.com/xvierd/daybook/internal/session"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	journalFlag   string
	globalJournal bool
	jsonOutput    bool

	// Global dependencies
	appConfig  *config.Config
	journalCtx *journal.Context
	store      *journal.Store
	journalSvc *services.JournalService
	notifier   *notification.Notifier
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "daybook - a plain-text daily journal and task list",
	Long: `Daybook keeps tasks, notes and events in one plain-text file,
one section per day. Entries can carry #tags and @date tokens; dated
and recurring entries surface on the days they apply to.

Run "daybook" with no arguments to open the interactive journal.
Inside a git repository with a .daybook.md at its root, that project
journal is used instead of the global one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&journalFlag, "journal", "j", "", "Path to the journal file (default: project journal or config)")
	rootCmd.PersistentFlags().BoolVar(&globalJournal, "global", false, "Use the global journal even inside a repository with a project journal")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("daybook\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

// initializeServices loads the config and opens the journal everything
// else operates on.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// A broken config file should not lock the journal away.
		appConfig = config.DefaultConfig()
	}

	path, err := resolveJournalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	store = journal.NewStore(path)
	journalSvc = services.NewJournalService(store, appConfig)
	notifier = notification.New(&appConfig.Notifications)
	return nil
}

// resolveJournalPath picks the journal file: the --journal flag wins,
// then a project journal at the enclosing git root, then the config.
func resolveJournalPath() (string, error) {
	if journalFlag != "" {
		return filepath.Abs(journalFlag)
	}

	globalPath, err := appConfig.JournalPath()
	if err != nil {
		return "", err
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	journalCtx = journal.NewContext(globalPath, wd)
	if !globalJournal {
		journalCtx.SetActiveSlot(journal.SlotProject)
	}
	return journalCtx.ActivePath(), nil
}

// runTUI implements the bare "daybook" command.
func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		// No TTY: print today's entries instead of drawing screens.
		return printDay(domain.Today())
	}

	s, err := session.New(store, domain.Today())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	s.HideCompleted = appConfig.HideCompleted

	model := tui.NewModel(s, appConfig)
	if len(appConfig.Calendar.Sources) > 0 {
		model.SetCalendarFetch(calendarLoader())
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// calendarLoader returns the one-shot event fetch the TUI runs in the
// background at startup.
func calendarLoader() func() *calendar.Store {
	sources := appConfig.Calendar.Sources
	baseDir := filepath.Dir(store.Path())
	return func() *calendar.Store {
		cacheDir, err := config.CachePath()
		if err != nil {
			cacheDir = os.TempDir()
		}
		events := calendar.NewStore()
		today := domain.Today()
		events.Refresh(calendar.NewFetcher(cacheDir, baseDir), sources,
			today.AddDate(0, 0, -7), today.AddDate(0, 0, 60))
		return events
	}
}

// printDay writes one day's entries as plain text, used for piped output.
func printDay(date time.Time) error {
	view, err := journalSvc.Day(date)
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}
	fmt.Printf("# %s\n", date.Format("2006/01/02"))
	for _, entry := range view.Projected {
		fmt.Println(entry.Prefix() + entry.Content)
	}
	for _, entry := range view.Entries {
		fmt.Println(entry.Prefix() + entry.Content)
	}
	return nil
}
