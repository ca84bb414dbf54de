package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

type imagesResponse struct {
	Results []struct {
		Title     string `json:"title"`
		Image     string `json:"image"`
		Thumbnail string `json:"thumbnail"`
		URL       string `json:"url"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Source    string `json:"source"`
	} `json:"results"`
}

type newsResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Excerpt string `json:"excerpt"`
		Source  string `json:"source"`
		Date    int64  `json:"date"`
		Image   string `json:"image"`
	} `json:"results"`
}

func (c *Client) jsonURL(endpoint, query, locale, vqd string, extra url.Values) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("o", "json")
	params.Set("vqd", vqd)
	params.Set("p", "1")
	if locale != "" {
		params.Set("l", locale)
	}
	for k, v := range extra {
		params[k] = v
	}
	return c.baseURL + endpoint + "?" + params.Encode()
}

func (c *Client) searchImages(ctx context.Context, query, locale, vqd string) ([]model.Entry, error) {
	body, err := c.get(ctx, c.jsonURL("/i.js", query, locale, vqd, url.Values{"f": {",,,,,"}}))
	if err != nil {
		return nil, err
	}

	var payload imagesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("decode duckduckgo images failed: %w", err))
	}

	entries := make([]model.Entry, 0, len(payload.Results))
	for _, r := range payload.Results {
		entries = append(entries, model.Entry{
			"title":     r.Title,
			"image":     r.Image,
			"thumbnail": r.Thumbnail,
			"url":       r.URL,
			"width":     r.Width,
			"height":    r.Height,
			"source":    r.Source,
		})
	}
	return entries, nil
}

func (c *Client) searchNews(ctx context.Context, query, locale, vqd string) ([]model.Entry, error) {
	body, err := c.get(ctx, c.jsonURL("/news.js", query, locale, vqd, url.Values{"noamp": {"1"}}))
	if err != nil {
		return nil, err
	}

	var payload newsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, search.NewTypedError(search.ErrorTypeDecode, fmt.Errorf("decode duckduckgo news failed: %w", err))
	}

	entries := make([]model.Entry, 0, len(payload.Results))
	for _, r := range payload.Results {
		entry := model.Entry{
			"title":   r.Title,
			"url":     r.URL,
			"excerpt": r.Excerpt,
			"source":  r.Source,
		}
		if r.Date > 0 {
			entry["date"] = time.Unix(r.Date, 0).UTC().Format(time.RFC3339)
		}
		if r.Image != "" {
			entry["thumbnail"] = r.Image
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
