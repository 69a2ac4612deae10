// Package observability provides the optional, synchronous debug
// observer every core operation calls through. It never influences a
// result and must not panic; when present it is the caller's
// responsibility to keep it thread-safe (spec §5).
package observability

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger the CLI's Observer
// instances log through. level is a zerolog level name ("debug",
// "info", "warn", "error"); format "human" selects a console writer,
// anything else emits structured JSON.
func InitLogger(level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if format == "human" {
		log.Logger = base.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano})
	} else {
		log.Logger = base
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// Observer receives structured entry/exit events from core operations.
// A nil *Observer is valid and simply means "no observability" — every
// method on it is a no-op when the receiver is nil.
type Observer struct {
	logger        zerolog.Logger
	correlationID string
}

// New returns an Observer that logs through the global zerolog logger,
// tagging every event with a fresh correlation id.
func New() *Observer {
	return &Observer{
		logger:        log.Logger,
		correlationID: uuid.NewString(),
	}
}

// NewWithID returns an Observer tagged with a caller-supplied
// correlation id, so every event of one CLI invocation carries the same
// id.
func NewWithID(id string) *Observer {
	return &Observer{logger: log.Logger, correlationID: id}
}

// CorrelationID returns the id this observer tags its events with, or
// the empty string for a nil observer.
func (o *Observer) CorrelationID() string {
	if o == nil {
		return ""
	}

	return o.correlationID
}

// Enter logs operation entry. fields must never include raw key
// material; pass lengths and non-sensitive metadata only.
func (o *Observer) Enter(op string, fields map[string]any) {
	o.emit(zerolog.DebugLevel, op, "enter", nil, fields)
}

// Exit logs operation completion, successful or not.
func (o *Observer) Exit(op string, err error, fields map[string]any) {
	level := zerolog.DebugLevel
	if err != nil {
		level = zerolog.WarnLevel
	}
	o.emit(level, op, "exit", err, fields)
}

func (o *Observer) emit(level zerolog.Level, op, phase string, err error, fields map[string]any) {
	if o == nil {
		return
	}
	// The observer MUST NOT throw: recover defensively around the
	// logging call so a misbehaving zerolog hook never escapes into
	// caller code.
	defer func() {
		_ = recover()
	}()

	evt := o.logger.WithLevel(level).
		Str("op", op).
		Str("phase", phase).
		Str("correlation_id", o.correlationID)
	for k, v := range fields {
		evt = evt.Interface(k, v)
	}
	if err != nil {
		evt = evt.AnErr("error", err)
	}
	evt.Msg("core_operation")
}
