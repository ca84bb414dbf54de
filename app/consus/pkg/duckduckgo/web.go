package duckduckgo

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

func (c *Client) searchWeb(ctx context.Context, query, locale string) ([]model.Entry, error) {
	u, err := url.Parse(c.htmlURL)
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeConfig, fmt.Errorf("invalid duckduckgo html url: %w", err))
	}
	params := u.Query()
	params.Set("q", query)
	if locale != "" {
		params.Set("kl", locale)
	}
	u.RawQuery = params.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return parseWeb(body)
}

// parseWeb 解析 html.duckduckgo.com 的结果页，跳过广告
func parseWeb(body []byte) ([]model.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("parse duckduckgo html failed: %w", err))
	}

	entries := []model.Entry{}
	doc.Find("div.result").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}
		a := s.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		link := resolveLink(href)
		if link == "" {
			return
		}
		entries = append(entries, model.Entry{
			"title":   strings.TrimSpace(a.Text()),
			"link":    link,
			"snippet": strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
	})
	return entries, nil
}

// resolveLink 还原 //duckduckgo.com/l/?uddg=... 形式的跳转链接
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasPrefix(u.Path, "/l/") {
		return target
	}
	return href
}
