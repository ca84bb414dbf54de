package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"strings"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/logger"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/reqid"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "consus"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/consus/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		stdlog.Fatalf("无法加载配置文件: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		stdlog.Fatalf("无法初始化日志: %v", err)
	}

	// kratos 日志统一写入 logrus，并附带服务信息与请求 ID
	kl := log.With(logger.NewKratosLogger(logger.Log),
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
		"request_id", reqid.Valuer(),
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	app, cleanup, err := wireApp(cfg, m, prometheus.DefaultGatherer, kl)
	if err != nil {
		logger.Log.Fatalf("初始化失败: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务异常退出: %v", err)
	}
}

func newApp(c *config.Config, logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
		kratos.AfterStart(func(context.Context) error {
			base := baseURL(c.Server.Addr)
			h := log.NewHelper(logger)
			h.Infof("Consus Search Engine: %s/api/search", base)
			h.Infof("Consus AI: %s/api/ai", base)
			return nil
		}),
	)
}

// baseURL 将监听地址转换为本地访问地址，例如 ":3000" -> "http://localhost:3000"
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		return "http://localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return "http://" + addr
}
