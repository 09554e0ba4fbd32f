package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/delivery/telegram/flows"
	"ktm-hours/internal/delivery/telegram/keyboards"
	"ktm-hours/internal/delivery/telegram/router"
	"ktm-hours/internal/domain"
)

type Handler struct {
	Bot       *telebot.Bot
	Timesheet *service.TimesheetService
	Export    *service.ExportService
	Async     *service.AsyncService
	Roster    []string
	Resets    *flows.ResetGuard
	Router    *router.CallbackRouter
	Logger    *zap.Logger
}

var (
	btnWeek   = telebot.Btn{Text: "📊 Weekly summary"}
	btnExport = telebot.Btn{Text: "📥 Export to Excel"}
	btnReset  = telebot.Btn{Text: "🗑 Reset all"}
)

const usage = `Commands:
/set Employee | Day | Start | End | Break
    e.g. /set Kabiraj Lamichhane | Monday | 9:00 AM | 5:30 PM | 0.5
    break is in hours and may be left out
/day Employee | Day
/week [Employee]
/export
/reset`

func (h *Handler) Register() {
	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/help", h.handleStart)
	h.Bot.Handle("/set", h.handleSet)
	h.Bot.Handle("/day", h.handleDay)
	h.Bot.Handle("/week", h.handleWeek)
	h.Bot.Handle("/export", h.handleExport)
	h.Bot.Handle("/reset", h.handleReset)
	h.Bot.Handle(&btnWeek, h.handleWeek)
	h.Bot.Handle(&btnExport, h.handleExport)
	h.Bot.Handle(&btnReset, h.handleReset)

	deps := &flows.Deps{
		Timesheet: h.Timesheet,
		Async:     h.Async,
		Roster:    h.Roster,
		Resets:    h.Resets,
		Logger:    h.Logger,
	}
	flows.RegisterSummary(h.Router, deps)
	flows.RegisterReset(h.Router, deps)
	h.Router.Attach(h.Bot)
}

func (h *Handler) handleStart(c telebot.Context) error {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnWeek.Text)),
		markup.Row(markup.Text(btnExport.Text)),
		markup.Row(markup.Text(btnReset.Text)),
	)
	msg := "KTM Supermarket working hours.\n\n" + usage
	if len(h.Roster) > 0 {
		msg += "\n\nEmployees:\n" + strings.Join(h.Roster, "\n")
	}
	return c.Send(msg, markup)
}

func (h *Handler) handleSet(c telebot.Context) error {
	rec, err := parseShift(h.Roster, c.Message().Payload)
	if err != nil {
		return c.Send(inputError(err))
	}
	_, err = service.Await(context.Background(), h.Async, func() (struct{}, error) {
		return struct{}{}, h.Timesheet.SaveShift(rec)
	})
	if err != nil {
		return c.Send("Could not save the shift: " + err.Error())
	}
	return c.Send("Saved. " + flows.FormatShift(rec))
}

type lookup struct {
	rec   domain.ShiftRecord
	found bool
}

func (h *Handler) handleDay(c telebot.Context) error {
	employee, day, err := parseKey(h.Roster, c.Message().Payload)
	if err != nil {
		return c.Send(inputError(err))
	}
	res, err := service.Await(context.Background(), h.Async, func() (lookup, error) {
		rec, found, err := h.Timesheet.GetShift(employee, day)
		return lookup{rec: rec, found: found}, err
	})
	if err != nil {
		return c.Send("Could not load the timesheet: " + err.Error())
	}
	if !res.found {
		return c.Send(employee + ", " + day.String() + ": not entered yet (0.00 hrs).")
	}
	return c.Send(flows.FormatShift(res.rec))
}

func (h *Handler) handleWeek(c telebot.Context) error {
	var payload string
	if c.Message() != nil && strings.HasPrefix(c.Text(), "/") {
		payload = strings.TrimSpace(c.Message().Payload)
	}
	if payload == "" {
		if len(h.Roster) == 0 {
			return h.sendSummaries(c, nil)
		}
		title, markup := keyboards.BuildRosterKeyboard(h.Roster)
		return c.Send(title, markup)
	}

	employee, err := service.ResolveEmployee(h.Roster, payload)
	if err != nil {
		return c.Send(inputError(err))
	}
	return h.sendSummaries(c, []string{employee})
}

func (h *Handler) sendSummaries(c telebot.Context, names []string) error {
	summaries, err := service.Await(context.Background(), h.Async, func() ([]service.WeeklySummary, error) {
		if len(names) == 1 {
			ws, err := h.Timesheet.WeeklySummary(names[0])
			return []service.WeeklySummary{ws}, err
		}
		return h.Timesheet.Summaries(names)
	})
	if err != nil {
		return c.Send("Could not load the timesheet: " + err.Error())
	}
	if len(summaries) == 0 {
		return c.Send("No shifts have been entered yet.")
	}
	return c.Send(flows.FormatSummaries(summaries), telebot.ModeHTML)
}

type exported struct {
	file *telebot.Document
}

func (h *Handler) handleExport(c telebot.Context) error {
	res, err := service.Await(context.Background(), h.Async, func() (exported, error) {
		buf, name, err := h.Export.ExportWeekly(h.Roster)
		if err != nil {
			return exported{}, err
		}
		return exported{file: &telebot.Document{
			File:     telebot.FromReader(buf),
			FileName: name,
			Caption:  "Weekly summary",
		}}, nil
	})
	if errors.Is(err, service.ErrExportNoShifts) {
		return c.Send("Nothing to export: no shifts have been entered yet.")
	}
	if err != nil {
		h.Logger.Error("export failed", zap.Error(err))
		return c.Send("Export failed: " + err.Error())
	}
	return c.Send(res.file)
}

// handleReset is the first of the two reset steps; the confirm button is the second.
func (h *Handler) handleReset(c telebot.Context) error {
	h.Resets.Request(c.Chat().ID)
	h.Logger.Info("reset requested", zap.Int64("chat", c.Chat().ID))
	title, markup := keyboards.BuildResetKeyboard()
	return c.Send(title, markup)
}

func inputError(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return "Wrong format.\n\n" + usage
	case errors.Is(err, service.ErrUnknownEmployee):
		return err.Error() + ". Send /start to see the employee list."
	}
	return "Invalid input: " + err.Error()
}
