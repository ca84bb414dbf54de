package ai

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/consus/app/consus/pkg/logger"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// Bridge 转发查询到 AI 并组装响应
type Bridge struct {
	answerer Answerer
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewBridge m 为 nil 时不记录指标
func NewBridge(answerer Answerer, m *metrics.Metrics) *Bridge {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Bridge{answerer: answerer, metrics: m, now: time.Now}
}

// Ask 调用 AI 获取回答；失败时返回的错误仅用于日志，不应回显给调用方
func (b *Bridge) Ask(ctx context.Context, query string) (*model.AIResponse, error) {
	start := b.now()
	answer, err := b.answerer.Answer(ctx, query)
	if err != nil {
		errType := search.ClassifyError(err)
		b.metrics.AIRequests.WithLabelValues(errType).Inc()
		logger.Log.WithFields(logrus.Fields{"error_type": errType}).Errorf("ai answer failed: %v", err)
		return nil, err
	}
	elapsed := b.now().Sub(start)
	b.metrics.AIRequests.WithLabelValues("success").Inc()
	logger.Log.WithField("elapsed", elapsed).Infof("ai answered: %q", query)

	return &model.AIResponse{
		Status: "success",
		Query:  query,
		Answer: answer,
		Time:   model.FormatElapsed(elapsed),
	}, nil
}
