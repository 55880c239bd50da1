package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	reminderRepo "vaxremind/database/repository/reminder"
	"vaxremind/models"
	"vaxremind/services/evaluator"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addEvaluate(topLevel *cobra.Command) {
	var at, fromFile string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "List the reminders that are due now without showing notifications.",
		Example: `
vaxremind evaluate
vaxremind evaluate --at 2026-03-01T09:30
vaxremind evaluate --from-file ./reminders.json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			now := time.Now().In(loc)
			if at != "" {
				if now, err = time.ParseInLocation("2006-01-02T15:04", at, loc); err != nil {
					return fmt.Errorf("invalid --at value %q: %w", at, err)
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var store reminderRepo.ReminderRepository
			if fromFile != "" {
				if store, err = reminderRepo.LoadFile(fromFile); err != nil {
					return err
				}
			} else {
				a := &app{cfg: cfg, logger: logger}
				a.connectStore(ctx)
				defer a.close()
				if a.store == nil {
					return fmt.Errorf("evaluate: reminder store unavailable, check DATABASE_URL or use --from-file")
				}
				store = a.store
			}

			reminders, err := store.List(ctx)
			if err != nil {
				return err
			}
			printDue(cmd.OutOrStdout(), evaluator.Evaluate(reminders, now))
			return nil
		},
	}
	cmd.Flags().StringVar(&fromFile, "from-file", "", "read reminders from a JSON file instead of the database")
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this local time (YYYY-MM-DDTHH:MM) instead of now")

	topLevel.AddCommand(cmd)
}

func printDue(w io.Writer, due []models.DueReminder) {
	if len(due) == 0 {
		_, _ = fmt.Fprintln(w, "no reminders due")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "Name", "Date", "Time", "Priority", "State")
	for _, d := range due {
		state := "due"
		if d.Result.IsOverdue {
			state = "overdue"
		}
		tbl.AddRow(d.Reminder.ID, d.Reminder.Name, d.Reminder.ScheduledDate, d.Reminder.ScheduledTime, d.Reminder.Priority, state)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
