package search

import (
	"context"

	"github.com/iWorld-y/consus/app/consus/pkg/model"
)

// Searcher 定义单地区搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 单地区搜索请求
type Request struct {
	Query  string
	Locale string // provider 地区代码，例如 "tr-tr"
	Type   string // 原样透传的类型选择器，例如 "web" 或 "web,news"
}

// Response 单地区搜索结果，各分类均可为空
type Response struct {
	Web    []model.Entry
	Images []model.Entry
	News   []model.Entry
}
