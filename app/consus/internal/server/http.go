package server

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/consus/app/consus/internal/service"
	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/reqid"
)

// NewHTTPServer 创建 HTTP 服务并注册路由
func NewHTTPServer(c *config.Config, s *service.ConsusService, g prometheus.Gatherer, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(reqid.Filter),
	}
	if c.Server.Addr != "" {
		opts = append(opts, http.Address(c.Server.Addr))
	}
	if d := c.ServerTimeout(); d > 0 {
		opts = append(opts, http.Timeout(d))
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/")
	r.GET(service.EndpointSearch, s.Search)
	r.GET(service.EndpointAI, s.Ask)

	srv.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	return srv
}
