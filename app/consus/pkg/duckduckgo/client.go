package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

const (
	defaultHTMLURL   = "https://html.duckduckgo.com/html/"
	defaultBaseURL   = "https://duckduckgo.com"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxBodyBytes = 5 << 20
)

var vqdPattern = regexp.MustCompile(`vqd=["']?([0-9-]+)`)

// Client DuckDuckGo 爬虫客户端，按 kl 地区代码抓取网页、图片、新闻
type Client struct {
	htmlURL   string
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient 创建 DuckDuckGo 客户端，空参数使用默认值
func NewClient(htmlURL, baseURL, userAgent string) *Client {
	if htmlURL == "" {
		htmlURL = defaultHTMLURL
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		htmlURL:   htmlURL,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 执行单地区搜索，按类型选择器抓取对应分类
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	kinds := search.ParseKinds(req.Type)
	resp := &search.Response{}

	g, gctx := errgroup.WithContext(ctx)
	if kinds.Web {
		g.Go(func() error {
			web, err := c.searchWeb(gctx, req.Query, req.Locale)
			resp.Web = web
			return err
		})
	}
	if kinds.Images || kinds.News {
		// 图片与新闻接口共用同一个 vqd token
		g.Go(func() error {
			vqd, err := c.token(gctx, req.Query)
			if err != nil {
				return err
			}
			if kinds.Images {
				if resp.Images, err = c.searchImages(gctx, req.Query, req.Locale, vqd); err != nil {
					return err
				}
			}
			if kinds.News {
				if resp.News, err = c.searchNews(gctx, req.Query, req.Locale, vqd); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// token 获取 JSON 接口需要的 vqd 参数
func (c *Client) token(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	body, err := c.get(ctx, c.baseURL+"/?"+params.Encode())
	if err != nil {
		return "", err
	}
	m := vqdPattern.FindSubmatch(body)
	if m == nil {
		return "", search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("duckduckgo vqd token not found"))
	}
	return string(m[1]), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("create request failed: %w", err))
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Referer", c.baseURL+"/")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("duckduckgo request failed: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, search.NewTypedError(search.StatusErrorType(res.StatusCode),
			fmt.Errorf("duckduckgo http %d: %s", res.StatusCode, strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("read body failed: %w", err))
	}
	return body, nil
}
