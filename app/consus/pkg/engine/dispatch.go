package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/consus/app/consus/pkg/logger"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// dispatch 为每个地区代码并发发起一次搜索，结果顺序与 codes 一致
// 任一地区失败则整体失败，其余进行中的调用通过 context 取消
func (e *Engine) dispatch(ctx context.Context, query, kind string, codes []string) ([]*search.Response, error) {
	results := make([]*search.Response, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			resp, err := e.searchOne(gctx, query, kind, code)
			if err != nil {
				return fmt.Errorf("search locale %s: %w", code, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) searchOne(ctx context.Context, query, kind, code string) (*search.Response, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := e.searcher.Search(ctx, &search.Request{Query: query, Locale: code, Type: kind})
	e.metrics.ProviderDuration.WithLabelValues(e.provider).Observe(time.Since(start).Seconds())

	entry := logger.Log.WithFields(logrus.Fields{"locale": code, "provider": e.provider})
	if err != nil {
		errType := search.ClassifyError(err)
		e.metrics.ProviderRequests.WithLabelValues(e.provider, code, errType).Inc()
		entry.WithField("error_type", errType).Errorf("provider search failed: %v", err)
		return nil, err
	}
	e.metrics.ProviderRequests.WithLabelValues(e.provider, code, "success").Inc()
	entry.Debugf("provider search done in %s", time.Since(start))

	if resp == nil {
		resp = &search.Response{}
	}
	return resp, nil
}
