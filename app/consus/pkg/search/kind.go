package search

import "strings"

// Kinds 类型选择器解析后请求的结果分类
type Kinds struct {
	Web    bool
	Images bool
	News   bool
}

// ParseKinds 解析逗号分隔的类型选择器，无法识别时退回 web
func ParseKinds(selector string) Kinds {
	var k Kinds
	for _, part := range strings.Split(selector, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "web":
			k.Web = true
		case "images", "image":
			k.Images = true
		case "news":
			k.News = true
		case "all":
			k = Kinds{Web: true, Images: true, News: true}
		}
	}
	if !k.Web && !k.Images && !k.News {
		k.Web = true
	}
	return k
}
