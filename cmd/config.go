package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit favorite tags, saved filters and notifications",
	Long: `Interactively configure the journal: favorite-tag shortcuts (#1..#9),
saved filters ($name), the hide-completed default and desktop
notifications. The config lives in ~/.config/daybook/config.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		for {
			printConfig()

			fmt.Println("  What would you like to change?")
			fmt.Println("    [f] Set a favorite tag")
			fmt.Println("    [s] Set a saved filter")
			fmt.Println("    [h] Toggle hide-completed default")
			fmt.Println("    [n] Toggle notifications")
			fmt.Println("    [q] Done")
			fmt.Print("  > ")

			choice, err := reader.ReadString('\n')
			if err != nil {
				return nil
			}
			switch strings.TrimSpace(choice) {
			case "f":
				if err := editFavoriteTag(reader); err != nil {
					return err
				}
			case "s":
				if err := editSavedFilter(reader); err != nil {
					return err
				}
			case "h":
				appConfig.HideCompleted = !appConfig.HideCompleted
				if err := config.Save(appConfig); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			case "n":
				appConfig.Notifications.Enabled = !appConfig.Notifications.Enabled
				if err := config.Save(appConfig); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			case "q", "":
				return nil
			}
		}
	},
}

func printConfig() {
	journalPath := store.Path()

	fmt.Println()
	fmt.Println("  Current configuration:")
	fmt.Println()
	fmt.Printf("  Journal:         %s\n", journalPath)
	if journalCtx != nil && journalCtx.ActiveSlot() == journal.SlotProject {
		if project, ok := journalCtx.ProjectPath(); ok && project == journalPath {
			fmt.Printf("  Global journal:  %s\n", journalCtx.GlobalPath())
		}
	}
	fmt.Printf("  Hide completed:  %v\n", appConfig.HideCompleted)

	notifStatus := "off"
	if appConfig.Notifications.Enabled {
		notifStatus = "on"
		if appConfig.Notifications.Sound {
			notifStatus = "on (with sound)"
		}
	}
	fmt.Printf("  Notifications:   %s\n", notifStatus)

	if len(appConfig.Calendar.Sources) > 0 {
		fmt.Println("  Calendar sources:")
		for _, source := range appConfig.Calendar.Sources {
			fmt.Printf("    %s\n", source)
		}
	}

	if len(appConfig.FavoriteTags) > 0 {
		fmt.Println("  Favorite tags:")
		for _, key := range sortedKeys(appConfig.FavoriteTags) {
			fmt.Printf("    #%s -> #%s\n", key, appConfig.FavoriteTags[key])
		}
	}
	if len(appConfig.SavedFilters) > 0 {
		fmt.Println("  Saved filters:")
		for _, name := range sortedKeys(appConfig.SavedFilters) {
			fmt.Printf("    $%s = %s\n", name, appConfig.SavedFilters[name])
		}
	}
	fmt.Println()
}

func editFavoriteTag(reader *bufio.Reader) error {
	fmt.Print("  Digit (0-9): ")
	digit, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	digit = strings.TrimSpace(digit)
	if len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
		fmt.Println("  Not a digit.")
		return nil
	}

	fmt.Print("  Tag (empty to unset): ")
	tag, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))

	if tag == "" {
		delete(appConfig.FavoriteTags, digit)
	} else {
		if !domain.TagRE.MatchString("#" + tag) {
			fmt.Println("  Not a valid tag.")
			return nil
		}
		appConfig.FavoriteTags[digit] = tag
	}
	if err := config.Save(appConfig); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func editSavedFilter(reader *bufio.Reader) error {
	fmt.Print("  Name: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "$"))
	if name == "" {
		return nil
	}

	fmt.Print("  Query (empty to unset): ")
	query, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	query = strings.TrimSpace(query)

	if query == "" {
		delete(appConfig.SavedFilters, name)
	} else {
		appConfig.SavedFilters[name] = query
	}
	if err := config.Save(appConfig); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
