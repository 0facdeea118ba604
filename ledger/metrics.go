package ledger

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "token"
	subsystem = "ledger"
)

type metrics struct {
	calls *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "calls_total",
			Help:      "Number of ledger calls by method and result",
		}, []string{"method", "result"}),
	}

	if reg != nil {
		reg.MustRegister(m.calls)
	}

	return m
}

func (m *metrics) observe(method string, err error) {
	m.calls.WithLabelValues(method, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrUninitialized):
		return "uninitialized"
	case errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrOutOfRange):
		return "invalid_argument"
	case errors.Is(err, ErrBalanceOverflow):
		return "overflow"
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	default:
		return "error"
	}
}
