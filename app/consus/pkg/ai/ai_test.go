package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

type mockChatModel struct {
	messages []*schema.Message
	reply    *schema.Message
	err      error
	deadline bool
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.messages = input
	_, m.deadline = ctx.Deadline()
	return m.reply, m.err
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

type mockAnswerer struct {
	calls  int
	answer string
	err    error
}

func (m *mockAnswerer) Answer(ctx context.Context, query string) (string, error) {
	m.calls++
	return m.answer, m.err
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	_, err := NewClient(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.AI.APIKey = "sk-test"
	c, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClientAnswer(t *testing.T) {
	cm := &mockChatModel{reply: &schema.Message{Role: schema.Assistant, Content: "42"}}
	c := newClient(cm, time.Minute)

	answer, err := c.Answer(context.Background(), "  what is the answer?  ")
	require.NoError(t, err)
	assert.Equal(t, "42", answer)

	require.Len(t, cm.messages, 1)
	assert.Equal(t, schema.User, cm.messages[0].Role)
	assert.Equal(t, "  what is the answer?  ", cm.messages[0].Content)
	assert.True(t, cm.deadline)
}

func TestClientAnswerError(t *testing.T) {
	c := newClient(&mockChatModel{err: errors.New("status 401")}, 0)
	_, err := c.Answer(context.Background(), "q")
	assert.EqualError(t, err, "generate: status 401")

	c = newClient(&mockChatModel{}, 0)
	_, err = c.Answer(context.Background(), "q")
	assert.Equal(t, search.ErrorTypeDecode, search.ClassifyError(err))
}

func TestUnavailable(t *testing.T) {
	a := Unavailable(ErrMissingAPIKey)
	_, err := a.Answer(context.Background(), "q")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, search.ErrorTypeConfig, search.ClassifyError(err))
}

func TestBridgeAsk(t *testing.T) {
	m := metrics.New(nil)
	a := &mockAnswerer{answer: "Paris"}
	b := NewBridge(a, m)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(2 * time.Second)}
	b.now = func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	resp, err := b.Ask(context.Background(), "capital of France")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "capital of France", resp.Query)
	assert.Equal(t, "Paris", resp.Answer)
	assert.Equal(t, "2s", resp.Time)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AIRequests.WithLabelValues("success")))
}

func TestBridgeAskFailure(t *testing.T) {
	m := metrics.New(nil)
	b := NewBridge(&mockAnswerer{err: errors.New("upstream exploded")}, m)

	resp, err := b.Ask(context.Background(), "q")
	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AIRequests.WithLabelValues(search.ErrorTypeUnknown)))
}
