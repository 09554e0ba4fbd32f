package router

import (
	"strings"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline-button callbacks by the unique key that
// telebot puts before the first '|'.
type CallbackRouter struct {
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

func New(logger *zap.Logger) *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc), logger: logger}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// Dispatch answers the callback and runs the matching handler. It reports
// false when no handler is registered for the key.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseCallback(c.Data())
	r.logger.Debug("callback", zap.String("key", key), zap.String("payload", payload))
	_ = c.Respond()

	h, ok := r.handlers[key]
	if !ok {
		r.logger.Warn("unhandled callback", zap.String("key", key))
		return false, nil
	}
	return true, h(c, payload)
}

// ParseCallback strips telebot's "\f" prefix and splits "key|payload".
func ParseCallback(data string) (key, payload string) {
	raw := strings.TrimPrefix(data, "\f")
	key, payload, _ = strings.Cut(raw, "|")
	return key, payload
}
