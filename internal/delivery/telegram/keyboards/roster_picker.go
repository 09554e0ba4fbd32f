package keyboards

import (
	"strconv"

	"gopkg.in/telebot.v3"
)

const (
	WeekPick     = "week_pick"
	WeekPickAll  = "all"
	ResetConfirm = "reset_confirm"
	ResetCancel  = "reset_cancel"
)

// BuildRosterKeyboard lays out one button per employee, two per row, plus an
// "All employees" row. Payloads are roster indexes so they stay within
// Telegram's 64-byte callback limit.
func BuildRosterKeyboard(roster []string) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}

	rows := []telebot.Row{}
	for i := 0; i < len(roster); i += 2 {
		row := telebot.Row{markup.Data(roster[i], WeekPick, strconv.Itoa(i))}
		if i+1 < len(roster) {
			row = append(row, markup.Data(roster[i+1], WeekPick, strconv.Itoa(i+1)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(markup.Data("All employees", WeekPick, WeekPickAll)))

	markup.Inline(rows...)
	return "Whose week do you want to see?", markup
}

func BuildResetKeyboard() (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Yes, delete everything", ResetConfirm),
		markup.Data("Cancel", ResetCancel),
	))
	return "This deletes every saved shift for every employee. Are you sure?", markup
}
