package logger

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillAdapter адаптер логгера для watermill
type WatermillAdapter struct {
	zl zerolog.Logger
}

// Watermill возвращает адаптер, пишущий логи watermill через тот же zerolog
func (l *Logger) Watermill() watermill.LoggerAdapter {
	return &WatermillAdapter{zl: l.zl.With().Str("component", "watermill").Logger()}
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.zl.Error(), fields).Err(err).Msg(msg)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.event(a.zl.Info(), fields).Msg(msg)
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.event(a.zl.Debug(), fields).Msg(msg)
}

func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.event(a.zl.Trace(), fields).Msg(msg)
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := a.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &WatermillAdapter{zl: ctx.Logger()}
}

func (a *WatermillAdapter) event(e *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}
