package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// Client SearXNG API 客户端
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 SearXNG 客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchResponse SearXNG 响应结构
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SearchResult SearXNG 单条结果
type SearchResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	ImgSrc        string `json:"img_src"`
	ThumbnailSrc  string `json:"thumbnail_src"`
	Engine        string `json:"engine"`
	PublishedDate string `json:"publishedDate"` // 字段名因版本而异，通常为 publishedDate
}

// Search 执行搜索，每个请求的分类对应一次 SearXNG 查询
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	kinds := search.ParseKinds(req.Type)
	language := Language(req.Locale)
	resp := &search.Response{}

	g, gctx := errgroup.WithContext(ctx)
	if kinds.Web {
		g.Go(func() error {
			results, err := c.query(gctx, req.Query, "general", language)
			if err != nil {
				return err
			}
			resp.Web = make([]model.Entry, 0, len(results))
			for _, r := range results {
				resp.Web = append(resp.Web, model.Entry{"title": r.Title, "link": r.URL, "snippet": r.Content})
			}
			return nil
		})
	}
	if kinds.Images {
		g.Go(func() error {
			results, err := c.query(gctx, req.Query, "images", language)
			if err != nil {
				return err
			}
			resp.Images = make([]model.Entry, 0, len(results))
			for _, r := range results {
				resp.Images = append(resp.Images, model.Entry{
					"title":     r.Title,
					"image":     r.ImgSrc,
					"thumbnail": r.ThumbnailSrc,
					"url":       r.URL,
					"source":    r.Engine,
				})
			}
			return nil
		})
	}
	if kinds.News {
		g.Go(func() error {
			results, err := c.query(gctx, req.Query, "news", language)
			if err != nil {
				return err
			}
			resp.News = make([]model.Entry, 0, len(results))
			for _, r := range results {
				resp.News = append(resp.News, model.Entry{
					"title":   r.Title,
					"url":     r.URL,
					"excerpt": r.Content,
					"source":  r.Engine,
					"date":    r.PublishedDate,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) query(ctx context.Context, query, category, language string) ([]SearchResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil || c.baseURL == "" {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("invalid searxng base URL %q", c.baseURL))
	}
	u.Path = "/search"

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", category)
	q.Set("language", language)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("create request failed: %w", err))
	}
	// 添加 User-Agent 避免被简单的反爬虫策略拦截
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, search.NewTypedError(search.StatusErrorType(res.StatusCode),
			fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body)))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("decode response failed: %w", err))
	}
	return searchResp.Results, nil
}

// regionOverrides DuckDuckGo 风格地区代码与 ISO 3166 不一致的部分
var regionOverrides = map[string]string{
	"uk": "GB",
	"xa": "",
}

// Language 将 "tr-tr"、"us-en" 形式的地区代码转换为 SearXNG 语言标签
func Language(code string) string {
	region, lang, ok := strings.Cut(strings.ToLower(code), "-")
	if !ok || region == "" || lang == "" || region == "wt" {
		return "all"
	}
	tag := strings.ToUpper(region)
	if override, ok := regionOverrides[region]; ok {
		tag = override
	}
	if tag == "" {
		return lang
	}
	return lang + "-" + tag
}
