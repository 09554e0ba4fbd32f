package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/delivery/telegram"
	"ktm-hours/internal/delivery/telegram/flows"
	"ktm-hours/internal/delivery/telegram/router"
	"ktm-hours/internal/domain"
	"ktm-hours/pkg/workerpool"
)

const resetWord = "RESET"

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireToken(); err != nil {
				return err
			}

			// One worker: store calls from concurrent updates run one at a time.
			pool := workerpool.NewWorkerPool(1, a.cfg.Worker.QueueSize)
			defer pool.Close()

			onError := func(err error, c telebot.Context) {
				a.logger.Error("telegram update failed", zap.Error(err))
			}
			bot, err := telebot.NewBot(telebot.Settings{
				Token:   a.cfg.Telegram.Token,
				Poller:  &telebot.LongPoller{Timeout: a.cfg.Telegram.PollTimeout},
				OnError: onError,
			})
			if err != nil {
				return fmt.Errorf("start bot: %w", err)
			}

			handler := &telegram.Handler{
				Bot:       bot,
				Timesheet: a.timesheet,
				Export:    service.NewExportService(a.timesheet, a.logger),
				Async:     service.NewAsyncService(pool),
				Roster:    a.cfg.RosterNames(),
				Resets:    flows.NewResetGuard(2 * time.Minute),
				Router:    router.New(a.logger),
				Logger:    a.logger,
			}
			handler.Register()

			go bot.Start()
			a.logger.Info("bot started",
				zap.String("username", bot.Me.Username),
				zap.Strings("roster", handler.Roster),
			)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit
			a.logger.Info("shutting down", zap.String("signal", sig.String()))
			bot.Stop()
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	var employee, day, start, end string
	var brk float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save one employee's shift for a day, replacing any earlier entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := service.ResolveEmployee(a.cfg.RosterNames(), employee)
			if err != nil {
				return err
			}
			d, err := domain.ParseDay(day)
			if err != nil {
				return err
			}
			s, err := domain.ParseTimeOfDay(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			e, err := domain.ParseTimeOfDay(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			rec := domain.ShiftRecord{Employee: name, Day: d, Start: s, End: e, Break: brk}
			if err := a.timesheet.SaveShift(rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved:", flows.FormatShift(rec))
			return nil
		},
	}
	cmd.Flags().StringVar(&employee, "employee", "", "employee name")
	cmd.Flags().StringVar(&day, "day", "", "day of week, e.g. Monday")
	cmd.Flags().StringVar(&start, "start", "", "start time, e.g. \"9:00 AM\" or 09:00")
	cmd.Flags().StringVar(&end, "end", "", "end time, e.g. \"5:30 PM\" or 17:30")
	cmd.Flags().Float64Var(&brk, "break", 0, "break in hours")
	for _, f := range []string{"employee", "day", "start", "end"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var employee, day string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the saved shift for one employee and day",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := service.ResolveEmployee(a.cfg.RosterNames(), employee)
			if err != nil {
				return err
			}
			d, err := domain.ParseDay(day)
			if err != nil {
				return err
			}
			rec, found, err := a.timesheet.GetShift(name, d)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s, %s: not entered (0.00 hrs)\n", name, d)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), flows.FormatShift(rec))
			return nil
		},
	}
	cmd.Flags().StringVar(&employee, "employee", "", "employee name")
	cmd.Flags().StringVar(&day, "day", "", "day of week")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the weekly summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var summaries []service.WeeklySummary
			if employee != "" {
				name, err := service.ResolveEmployee(a.cfg.RosterNames(), employee)
				if err != nil {
					return err
				}
				ws, err := a.timesheet.WeeklySummary(name)
				if err != nil {
					return err
				}
				summaries = append(summaries, ws)
			} else {
				var err error
				if summaries, err = a.timesheet.Summaries(a.cfg.RosterNames()); err != nil {
					return err
				}
			}
			return writeSummaryTable(cmd, summaries)
		},
	}
	cmd.Flags().StringVar(&employee, "employee", "", "only this employee")
	return cmd
}

func writeSummaryTable(cmd *cobra.Command, summaries []service.WeeklySummary) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	cols := []string{"Employee"}
	for _, d := range domain.Week {
		cols = append(cols, d.String())
	}
	cols = append(cols, "Weekly Total")
	fmt.Fprintln(w, strings.Join(cols, "\t")+"\t")

	for _, ws := range summaries {
		row := []string{ws.Employee}
		for _, h := range ws.Hours {
			row = append(row, fmt.Sprintf("%.2f", h))
		}
		row = append(row, fmt.Sprintf("%.2f", ws.Total))
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}
	return w.Flush()
}

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the weekly summary to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter := service.NewExportService(a.timesheet, a.logger)
			buf, name, err := exporter.ExportWeekly(a.cfg.RosterNames())
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default "+service.ExportName+")")
	return cmd
}

var errResetAborted = errors.New("reset aborted, nothing was deleted")

// newResetCmd clears the store only after the user types the confirmation word.
func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every saved shift (asks for confirmation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "This deletes every saved shift in %s.\nType %s to confirm: ", a.cfg.Store.Path, resetWord)
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errResetAborted
			}
			if strings.TrimSpace(line) != resetWord {
				return errResetAborted
			}
			if err := a.timesheet.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all shifts deleted")
			return nil
		},
	}
}
