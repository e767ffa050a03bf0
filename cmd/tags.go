package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag used in the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := journalSvc.Tags()
		if err != nil {
			return fmt.Errorf("failed to collect tags: %w", err)
		}

		if jsonOutput {
			jsonData, err := json.MarshalIndent(tags, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal tags: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		for _, tag := range tags {
			fmt.Println("#" + tag)
		}
		return nil
	},
}
