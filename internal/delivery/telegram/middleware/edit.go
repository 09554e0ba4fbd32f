package middleware

import (
	"gopkg.in/telebot.v3"
)

// EditOrSend replaces the message behind a callback when there is one and
// falls back to a new message when editing is not possible.
func EditOrSend(c telebot.Context, text string, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return c.Send(text, opts...)
}
