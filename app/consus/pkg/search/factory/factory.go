package factory

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/duckduckgo"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
	"github.com/iWorld-y/consus/app/consus/pkg/searxng"
	"github.com/iWorld-y/consus/app/consus/pkg/tavily"
)

const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderSearXNG    = "searxng"
	ProviderTavily     = "tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Search.Provider))
	if provider == "" {
		provider = ProviderDuckDuckGo
	}

	switch provider {
	case ProviderDuckDuckGo:
		ddg := cfg.Search.DuckDuckGo
		return duckduckgo.NewClient(ddg.HTMLURL, ddg.BaseURL, ddg.UserAgent), nil

	case ProviderSearXNG:
		baseURL := cfg.Search.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.SearchTimeout()), nil

	case ProviderTavily:
		apiKey := cfg.Search.Tavily.APIKey
		if apiKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(apiKey, cfg.Search.Tavily.BaseURL), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
