// Package alert implements operational alert dispatching to multiple sinks.
package alert

import (
	"fmt"
	"log/slog"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Sink types.
const (
	TypeConsole = "console"
	TypeSNS     = "sns"
	TypeSQS     = "sqs"
)

// Config describes one alert sink.
type Config struct {
	Type     string `yaml:"type" json:"type"`
	TopicARN string `yaml:"topicArn,omitempty" json:"topicArn,omitempty"`
	QueueURL string `yaml:"queueUrl,omitempty" json:"queueUrl,omitempty"`
}

// Sink is an alert destination.
type Sink interface {
	Send(alert types.OpsAlert) error
	Name() string
}

// Dispatcher routes operational alerts to configured sinks.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher from sink configs.
func NewDispatcher(configs []Config) (*Dispatcher, error) {
	d := &Dispatcher{logger: slog.Default()}
	for _, cfg := range configs {
		sink, err := newSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating %s sink: %w", cfg.Type, err)
		}
		d.sinks = append(d.sinks, sink)
	}
	return d, nil
}

// NewDispatcherWithSinks wires pre-built sinks, used by tests and the
// lambda entrypoints.
func NewDispatcherWithSinks(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, logger: slog.Default()}
}

// Dispatch sends an alert to all configured sinks. Sink failures are
// logged, never propagated: a broken notification channel must not take
// the pacing run down with it.
func (d *Dispatcher) Dispatch(alert types.OpsAlert) {
	for _, sink := range d.sinks {
		if err := sink.Send(alert); err != nil {
			d.logger.Error("sending ops alert failed", "sink", sink.Name(), "error", err)
		}
	}
}

// AlertFunc returns a function suitable for use as the engine's alert callback.
func (d *Dispatcher) AlertFunc() func(types.OpsAlert) {
	return d.Dispatch
}

func newSink(cfg Config) (Sink, error) {
	switch cfg.Type {
	case TypeConsole:
		return NewConsoleSink(), nil
	case TypeSNS:
		return NewSNSSink(cfg.TopicARN)
	case TypeSQS:
		return NewSQSSink(cfg.QueueURL)
	default:
		return nil, fmt.Errorf("unknown alert type %q", cfg.Type)
	}
}
