package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/services"
)

var (
	addType string
	addDate string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add an entry to the journal",
	Long: `Add an entry to the journal without opening the interactive view.

The content may carry #tags and @date tokens; relative dates like
@tomorrow are rewritten to absolute ones, and favorite-tag shortcuts
(#1..#9) expand from the config. The entry goes to today unless --date
says otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")

		kind, err := parseEntryKind(addType)
		if err != nil {
			return err
		}

		req := services.AddEntryRequest{Content: content, Kind: kind}
		if addDate != "" {
			date, ok := domain.ParseDate(addDate, domain.ContextInterface, domain.Today())
			if !ok {
				return fmt.Errorf("invalid date %q", addDate)
			}
			req.Date = date
		}

		added, err := journalSvc.AddEntry(req)
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"date":       added.Date.Format("2006-01-02"),
				"line_index": added.LineIndex,
				"content":    added.Content,
				"type":       kind.String(),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entry: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("Added to %s: %s\n", added.Date.Format("2006/01/02"), added.Content)
		return nil
	},
}

func parseEntryKind(name string) (domain.EntryKind, error) {
	switch name {
	case "", "task":
		return domain.KindTask, nil
	case "note":
		return domain.KindNote, nil
	case "event":
		return domain.KindEvent, nil
	}
	return domain.KindTask, fmt.Errorf("invalid entry type %q (task, note or event)", name)
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "task", "Entry type: task, note or event")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Day to add the entry to (default: today)")
}
