package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/reminder"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if a.db == nil {
				return errors.New("migrate needs --store=postgres")
			}
			if err := dbpkg.Migrate(a.db); err != nil {
				return err
			}

			a.log.Info("migrations applied")
			return nil
		},
	}
}

// remindCmd is meant to run once a day from cron.
func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "E-mail clients about tomorrow's consultations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			uc := reminder.NewSendReminders(a.consultations, a.inbox, a.mailer, a.log, a.cfg.App.Timezone)
			report, err := uc.Execute(ctx)
			if err != nil {
				return err
			}

			a.log.Info("reminders sent",
				zap.Int("found", report.Found),
				zap.Int("sent", report.Sent),
				zap.Int("failed", report.Failed),
			)
			return nil
		},
	}
}
