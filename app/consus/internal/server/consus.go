package server

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/consus/app/consus/pkg/ai"
	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/engine"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/search/factory"
)

// NewSearchEngine 根据配置选择搜索 provider 并创建搜索引擎
func NewSearchEngine(c *config.Config, m *metrics.Metrics) (*engine.Engine, error) {
	searcher, err := factory.NewSearcher(c)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	return engine.NewEngine(c, searcher, m), nil
}

// NewAIBridge 初始化 AI 问答；配置不可用时降级为始终失败，不影响搜索接口
func NewAIBridge(c *config.Config, m *metrics.Metrics, logger log.Logger) *ai.Bridge {
	client, err := ai.NewClient(context.Background(), c)
	if err != nil {
		log.NewHelper(logger).Warnf("AI disabled: %v", err)
		return ai.NewBridge(ai.Unavailable(err), m)
	}
	return ai.NewBridge(client, m)
}
