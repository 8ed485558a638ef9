package mcvisor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/mcvisor/mcvisor-go/pkg/mcvisor"

// metrics records line-processing counters.
type metrics struct {
	lines         metric.Int64Counter
	unrecognized  metric.Int64Counter
	handlerErrors metric.Int64Counter
	players       metric.Int64UpDownCounter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	lines, err := meter.Int64Counter("mcvisor.lines",
		metric.WithDescription("Server log lines classified, by event kind"),
		metric.WithUnit("{line}"))
	if err != nil {
		return nil, err
	}
	unrecognized, err := meter.Int64Counter("mcvisor.lines.unrecognized",
		metric.WithDescription("Server output lines without a log envelope"),
		metric.WithUnit("{line}"))
	if err != nil {
		return nil, err
	}
	handlerErrors, err := meter.Int64Counter("mcvisor.handler.errors",
		metric.WithDescription("Handler failures during dispatch, by event kind"),
		metric.WithUnit("{error}"))
	if err != nil {
		return nil, err
	}
	players, err := meter.Int64UpDownCounter("mcvisor.players.online",
		metric.WithDescription("Players online according to login and logout events"),
		metric.WithUnit("{player}"))
	if err != nil {
		return nil, err
	}

	return &metrics{
		lines:         lines,
		unrecognized:  unrecognized,
		handlerErrors: handlerErrors,
		players:       players,
	}, nil
}

func kindAttr(kind EventKind) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("kind", string(kind)))
}

func (m *metrics) recordEvent(ctx context.Context, ev Event) {
	m.lines.Add(ctx, 1, kindAttr(ev.Kind))
	switch ev.Kind {
	case EventLogin:
		m.players.Add(ctx, 1)
	case EventLogout:
		m.players.Add(ctx, -1)
	}
}

func (m *metrics) recordUnrecognized(ctx context.Context) {
	m.unrecognized.Add(ctx, 1)
}

func (m *metrics) recordHandlerError(ctx context.Context, kind EventKind) {
	m.handlerErrors.Add(ctx, 1, kindAttr(kind))
}
