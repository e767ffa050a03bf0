package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/domain"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [query]",
	Short: "Search entries across all days",
	Long: `Search the whole journal with the filter-query language.

Tokens combine with AND: #tag, plain text terms, !tasks / !notes /
!events / !completed / !tasks/incomplete, @before:DATE, @after:DATE,
@overdue, @later, @recurring, not:TOKEN, and $name for saved filters
from the config.

Examples:
  daybook query "#work !tasks/incomplete"
  daybook query "@overdue"
  daybook query "not:#home report"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		entries, err := journalSvc.Query(query)
		if err != nil {
			return err
		}

		if jsonOutput {
			rows := make([]map[string]interface{}, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, map[string]interface{}{
					"date":      entry.SourceDate.Format("2006-01-02"),
					"type":      entry.Kind.String(),
					"completed": entry.Completed,
					"content":   entry.Content,
					"tags":      domain.ExtractTags(entry.Content),
				})
			}
			jsonData, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entries: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%s  %s%s\n", entry.SourceDate.Format("2006/01/02"), entry.Prefix(), entry.Content)
		}
		return nil
	},
}
