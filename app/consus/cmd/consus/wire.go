//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iWorld-y/consus/app/consus/internal/server"
	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
)

// wireApp init kratos application.
func wireApp(*config.Config, *metrics.Metrics, prometheus.Gatherer, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		newApp,
	))
}
