package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ktm-hours/config"
	"ktm-hours/internal/app/service"
	"ktm-hours/internal/domain"
	"ktm-hours/internal/repository"
	applogger "ktm-hours/pkg/logger"
)

// app holds what every subcommand needs once the config has been read.
type app struct {
	cfgPath string

	cfg       *config.Config
	logger    *zap.Logger
	repo      domain.ShiftRepo
	closeRepo func() error
	timesheet *service.TimesheetService
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger

	repo, closeRepo, err := repository.Open(cfg.Store)
	if err != nil {
		return err
	}
	a.repo, a.closeRepo = repo, closeRepo
	a.timesheet = service.NewTimesheetService(repo, logger)

	logger.Debug("timesheet store ready",
		zap.String("command", cmd.Name()),
		zap.String("driver", cfg.Store.Driver),
		zap.String("path", cfg.Store.Path),
	)
	return nil
}

func (a *app) teardown() {
	if a.closeRepo != nil {
		if err := a.closeRepo(); err != nil {
			a.logger.Error("close store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "timesheet",
		Short:             "Weekly employee working hours: entry, summary and export",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ./config/config.yaml or ./config.yaml)")

	root.AddCommand(
		newBotCmd(a),
		newSetCmd(a),
		newGetCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newResetCmd(a),
	)
	return root
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.teardown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
