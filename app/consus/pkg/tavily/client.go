package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

const defaultBaseURL = "https://api.tavily.com"

// Client Tavily API 客户端
// Tavily 不支持地区代码，请求中的 Locale 会被忽略
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Tavily 客户端
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchRequest Tavily 搜索请求参数
type SearchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"` // basic or advanced
	Topic         string `json:"topic,omitempty"`        // general or news
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeImages bool   `json:"include_images,omitempty"`
}

// SearchResponse Tavily 搜索响应
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Images  []string       `json:"images"`
}

// SearchResult 单个搜索结果
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.apiKey == "" {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("tavily api key is missing"))
	}
	kinds := search.ParseKinds(req.Type)
	resp := &search.Response{}

	g, gctx := errgroup.WithContext(ctx)
	if kinds.Web || kinds.Images {
		// general 主题同时返回网页结果和图片
		g.Go(func() error {
			out, err := c.doSearch(gctx, SearchRequest{Query: req.Query, Topic: "general", IncludeImages: kinds.Images})
			if err != nil {
				return err
			}
			if kinds.Web {
				resp.Web = make([]model.Entry, 0, len(out.Results))
				for _, r := range out.Results {
					resp.Web = append(resp.Web, model.Entry{"title": r.Title, "link": r.URL, "snippet": r.Content})
				}
			}
			if kinds.Images {
				resp.Images = make([]model.Entry, 0, len(out.Images))
				for _, img := range out.Images {
					resp.Images = append(resp.Images, model.Entry{"image": img})
				}
			}
			return nil
		})
	}
	if kinds.News {
		g.Go(func() error {
			out, err := c.doSearch(gctx, SearchRequest{Query: req.Query, Topic: "news"})
			if err != nil {
				return err
			}
			resp.News = make([]model.Entry, 0, len(out.Results))
			for _, r := range out.Results {
				resp.News = append(resp.News, model.Entry{
					"title":   r.Title,
					"url":     r.URL,
					"excerpt": r.Content,
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

// doSearch 执行搜索 (Internal)
func (c *Client) doSearch(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if req.MaxResults == 0 {
		req.MaxResults = 10
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("create request failed: %w", err))
	}
	httpReq.Header.Add("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("read body failed: %w", err))
	}

	if res.StatusCode != http.StatusOK {
		return nil, search.NewTypedError(search.StatusErrorType(res.StatusCode),
			fmt.Errorf("tavily api error (status %d): %s", res.StatusCode, string(body)))
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("unmarshal response failed: %w", err))
	}

	return &searchResp, nil
}
