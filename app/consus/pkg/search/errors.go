package search

import (
	"context"
	"errors"
	"strings"
)

const (
	ErrorTypeConfig      = "config"
	ErrorTypeNetwork     = "network"
	ErrorTypeTimeout     = "timeout"
	ErrorTypeRateLimit   = "rate_limit"
	ErrorTypeUpstream5xx = "upstream_5xx"
	ErrorTypeDecode      = "decode"
	ErrorTypeUnknown     = "unknown"
)

// TypedError 带分类的 provider 错误
type TypedError struct {
	Type string
	Err  error
}

func (e *TypedError) Error() string {
	if e == nil {
		return "unknown error"
	}
	if e.Err == nil {
		return e.Type
	}
	return e.Err.Error()
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewTypedError 包装错误并附带分类
func NewTypedError(errorType string, err error) error {
	if err == nil {
		err = errors.New(errorType)
	}
	return &TypedError{Type: errorType, Err: err}
}

// ClassifyError 返回错误分类，用于日志与指标标签
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}
	var typed *TypedError
	if errors.As(err, &typed) && strings.TrimSpace(typed.Type) != "" {
		return typed.Type
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return ErrorTypeTimeout
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network is unreachable"):
		return ErrorTypeNetwork
	case strings.Contains(msg, "429"):
		return ErrorTypeRateLimit
	}
	return ErrorTypeUnknown
}

// StatusErrorType 将上游 HTTP 状态码映射为错误分类
func StatusErrorType(status int) string {
	switch {
	case status == 429:
		return ErrorTypeRateLimit
	case status >= 500:
		return ErrorTypeUpstream5xx
	}
	return ErrorTypeUnknown
}
