package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/locale"
	"github.com/iWorld-y/consus/app/consus/pkg/logger"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// Engine 多地区搜索聚合引擎
type Engine struct {
	searcher search.Searcher
	provider string
	timeout  time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewEngine 创建引擎实例，m 为 nil 时不记录指标
func NewEngine(cfg *config.Config, searcher search.Searcher, m *metrics.Metrics) *Engine {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Engine{
		searcher: searcher,
		provider: cfg.Search.Provider,
		timeout:  cfg.SearchTimeout(),
		metrics:  m,
		now:      time.Now,
	}
}

// Search 按地区并发搜索，合并、去重后组装响应
// rawLocales 为逗号分隔的地区 token，为空时使用默认地区
func (e *Engine) Search(ctx context.Context, query, rawLocales, kind string) (*model.SearchResponse, error) {
	codes := locale.Resolve(rawLocales)

	start := e.now()
	results, err := e.dispatch(ctx, query, kind, codes)
	if err != nil {
		return nil, err
	}
	entries := Dedupe(Merge(results))
	elapsed := e.now().Sub(start)

	logger.Log.WithFields(logrus.Fields{
		"locales": codes,
		"type":    kind,
		"results": len(entries),
		"elapsed": elapsed,
	}).Infof("search completed: %q", query)

	return &model.SearchResponse{
		Query:   query,
		Type:    kind,
		Time:    model.FormatElapsed(elapsed),
		Results: entries,
	}, nil
}
