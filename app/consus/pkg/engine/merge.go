package engine

import (
	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// Merge 按地区顺序展开结果：每个地区依次为 web、images、news
func Merge(results []*search.Response) []model.Entry {
	var n int
	for _, r := range results {
		if r != nil {
			n += len(r.Web) + len(r.Images) + len(r.News)
		}
	}

	out := make([]model.Entry, 0, n)
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, r.Web...)
		out = append(out, r.Images...)
		out = append(out, r.News...)
	}
	return out
}

type identity struct {
	key string
	ok  bool
}

// Dedupe 按身份键去重：位置取该键首次出现处，值取最后一次出现的条目
// 没有身份字段的条目共享同一个键，最终只保留最后一条
func Dedupe(entries []model.Entry) []model.Entry {
	index := make(map[identity]int, len(entries))
	out := make([]model.Entry, 0, len(entries))
	for _, entry := range entries {
		key, ok := entry.Identity()
		id := identity{key: key, ok: ok}
		if i, seen := index[id]; seen {
			out[i] = entry
			continue
		}
		index[id] = len(out)
		out = append(out, entry)
	}
	return out
}
