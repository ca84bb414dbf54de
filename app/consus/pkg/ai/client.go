package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// ErrMissingAPIKey 未配置 ai.api_key
var ErrMissingAPIKey = errors.New("ai api key is missing")

// Answerer 定义 AI 问答接口
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Client 基于 eino ChatModel 的问答客户端
type Client struct {
	chatModel model.BaseChatModel
	timeout   time.Duration
}

// NewClient 根据配置创建 OpenAI 兼容协议的问答客户端
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.AI.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return newClient(chatModel, cfg.AITimeout()), nil
}

func newClient(chatModel model.BaseChatModel, timeout time.Duration) *Client {
	return &Client{chatModel: chatModel, timeout: timeout}
}

// Answer 将查询作为一条 user 消息原样发送，返回回复内容
func (c *Client) Answer(ctx context.Context, query string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []*schema.Message{
		{Role: schema.User, Content: query},
	}
	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if resp == nil {
		return "", search.NewTypedError(search.ErrorTypeDecode, errors.New("empty chat completion"))
	}
	return resp.Content, nil
}

// unavailable 在 AI 未正确配置时使用，每次调用都返回初始化错误
type unavailable struct {
	err error
}

// Unavailable 返回一个始终失败的 Answerer
func Unavailable(err error) Answerer {
	return unavailable{err: search.NewTypedError(search.ErrorTypeConfig, err)}
}

func (u unavailable) Answer(context.Context, string) (string, error) {
	return "", u.err
}
