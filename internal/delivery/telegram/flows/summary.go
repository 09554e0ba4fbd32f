package flows

import (
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"ktm-hours/internal/delivery/telegram/keyboards"
	"ktm-hours/internal/delivery/telegram/middleware"
	"ktm-hours/internal/delivery/telegram/router"
)

func RegisterSummary(r *router.CallbackRouter, d *Deps) {
	r.Register(keyboards.WeekPick, func(c telebot.Context, payload string) error {
		names := d.Roster
		if payload != keyboards.WeekPickAll {
			i, err := strconv.Atoi(payload)
			if err != nil || i < 0 || i >= len(d.Roster) {
				return middleware.EditOrSend(c, "That employee is no longer on the roster.")
			}
			names = d.Roster[i : i+1]
		}

		summaries, err := d.Summaries(names)
		if err != nil {
			d.Logger.Error("weekly summary failed", zap.Error(err))
			return middleware.EditOrSend(c, "Could not load the timesheet: "+err.Error())
		}
		if payload != keyboards.WeekPickAll {
			summaries = summaries[:1]
		}
		return middleware.EditOrSend(c, FormatSummaries(summaries), telebot.ModeHTML)
	})
}
