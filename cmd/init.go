package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/adapters/journal"
)

var initNoIgnore bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project journal in the current repository",
	Long: `Create a .daybook.md at the root of the enclosing git repository.
Once it exists, daybook commands run inside the repository use it
instead of the global journal. The file is added to .gitignore unless
--no-ignore is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		path, err := journal.CreateProjectJournal(wd)
		if err != nil {
			return err
		}
		if journalCtx != nil {
			journalCtx.SetProjectPath(path)
		}
		if !initNoIgnore {
			if err := journal.AddToGitignore(wd); err != nil {
				return err
			}
		}

		fmt.Printf("Project journal: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initNoIgnore, "no-ignore", false, "Do not add the journal to .gitignore")
}
