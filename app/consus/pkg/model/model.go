package model

import "fmt"

// Entry 单条搜索结果，字段开放，由 provider 决定
type Entry map[string]any

// identityFields 身份字段优先级
var identityFields = []string{"link", "image", "url"}

// Identity 返回条目的身份键：link、image、url 中第一个非空值
// 三者都缺失时 ok 为 false，所有此类条目共享同一个键
func (e Entry) Identity() (key string, ok bool) {
	for _, field := range identityFields {
		v, exists := e[field]
		if !exists || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// SearchResponse /api/search 的响应体
type SearchResponse struct {
	Query   string  `json:"query"`
	Type    string  `json:"type"`
	Time    string  `json:"time"`
	Results []Entry `json:"results"`
}

// AIResponse /api/ai 的响应体
type AIResponse struct {
	Status string `json:"status"`
	Query  string `json:"query"`
	Answer string `json:"answer"`
	Time   string `json:"time"`
}

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error string `json:"error"`
}
