package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var remindNotify bool

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show today's events and open tasks",
	Long: `Show today's events and open tasks, including entries projected
onto today from other days. With --notify a desktop notification is
sent as well, suitable for a cron or timer unit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reminders, err := journalSvc.TodayReminders()
		if err != nil {
			return fmt.Errorf("failed to collect reminders: %w", err)
		}

		if len(reminders.Events) == 0 && len(reminders.Due) == 0 {
			fmt.Println("Nothing scheduled today.")
			return nil
		}

		for _, event := range reminders.Events {
			fmt.Printf("* %s\n", event.Content)
		}
		for _, task := range reminders.Due {
			fmt.Printf("- [ ] %s\n", task.Content)
		}

		if remindNotify && notifier.IsEnabled() {
			for _, event := range reminders.Events {
				if err := notifier.NotifyEvent(event.Content); err != nil {
					return fmt.Errorf("failed to send notification: %w", err)
				}
			}
			if err := notifier.NotifyDueTasks(len(reminders.Due)); err != nil {
				return fmt.Errorf("failed to send notification: %w", err)
			}
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().BoolVar(&remindNotify, "notify", false, "Also send a desktop notification")
}
