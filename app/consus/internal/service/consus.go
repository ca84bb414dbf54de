package service

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/consus/app/consus/pkg/ai"
	"github.com/iWorld-y/consus/app/consus/pkg/engine"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/model"
)

const (
	EndpointSearch = "/api/search"
	EndpointAI     = "/api/ai"

	defaultType = "web"

	msgSearchQueryRequired = "You must enter a query."
	msgAIQueryRequired     = "Query required"
	msgSearchError         = "Search error"
	msgAIError             = "AI error"
)

// ConsusService 对外提供搜索与 AI 问答接口
type ConsusService struct {
	engine  *engine.Engine
	bridge  *ai.Bridge
	metrics *metrics.Metrics
	log     *log.Helper
}

func NewConsusService(eng *engine.Engine, bridge *ai.Bridge, m *metrics.Metrics, logger log.Logger) *ConsusService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &ConsusService{
		engine:  eng,
		bridge:  bridge,
		metrics: m,
		log:     log.NewHelper(logger),
	}
}

// Search GET /api/search?q=&kl=&type=
func (s *ConsusService) Search(ctx http.Context) error {
	query := ctx.Query().Get("q")
	if query == "" {
		return s.reply(ctx, EndpointSearch, nethttp.StatusBadRequest, &model.ErrorResponse{Error: msgSearchQueryRequired})
	}
	kind := ctx.Query().Get("type")
	if kind == "" {
		kind = defaultType
	}
	locales := ctx.Query().Get("kl")

	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.engine.Search(c, query, locales, kind)
	})
	out, err := h(ctx, nil)
	if err != nil {
		s.log.WithContext(ctx).Errorf("search %q failed: %v", query, err)
		return s.reply(ctx, EndpointSearch, nethttp.StatusInternalServerError, &model.ErrorResponse{Error: msgSearchError})
	}
	return s.reply(ctx, EndpointSearch, nethttp.StatusOK, out)
}

// Ask GET /api/ai?q=
func (s *ConsusService) Ask(ctx http.Context) error {
	query := ctx.Query().Get("q")
	if query == "" {
		return s.reply(ctx, EndpointAI, nethttp.StatusBadRequest, &model.ErrorResponse{Error: msgAIQueryRequired})
	}

	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.bridge.Ask(c, query)
	})
	out, err := h(ctx, nil)
	if err != nil {
		s.log.WithContext(ctx).Errorf("ai %q failed: %v", query, err)
		return s.reply(ctx, EndpointAI, nethttp.StatusInternalServerError, &model.ErrorResponse{Error: msgAIError})
	}
	return s.reply(ctx, EndpointAI, nethttp.StatusOK, out)
}

func (s *ConsusService) reply(ctx http.Context, endpoint string, code int, body interface{}) error {
	s.metrics.HTTPRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	return ctx.JSON(code, body)
}
