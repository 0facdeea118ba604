package main

import (
	"github.com/nspcc-dev/token-contract/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// pushMetrics sends collected ledger counters to the Pushgateway. Failures
// don't affect the result of the command.
func pushMetrics(cfg config.Metrics, g prometheus.Gatherer, log *zap.Logger) {
	err := push.New(cfg.PushGateway, cfg.Job).Gatherer(g).Push()
	if err != nil {
		log.Warn("failed to push ledger metrics",
			zap.String("gateway", cfg.PushGateway), zap.Error(err))
	}
}
