package locale

import "strings"

const (
	// DefaultToken 未指定 kl 时使用的地区
	DefaultToken = "tr"
	// FallbackCode 未知地区映射到的代码，表示不限地区
	FallbackCode = "wt-wt"
)

// codes 地区 token 到 provider 地区代码的映射，进程内只读
var codes = map[string]string{
	"tr": "tr-tr", "de": "de-de", "us": "us-en", "fr": "fr-fr", "ru": "ru-ru",
	"jp": "jp-jp", "es": "es-es", "it": "it-it", "cn": "cn-zh", "gb": "uk-en",
	"br": "br-pt", "ar": "xa-ar", "nl": "nl-nl", "pl": "pl-pl", "kr": "kr-ko",
	"in": "in-en", "ca": "ca-en", "au": "au-en", "sa": "sa-ar", "se": "se-sv",
	"no": "no-no", "dk": "dk-da", "fi": "fi-fi", "gr": "gr-el", "il": "il-he",
	"mx": "mx-es", "id": "id-id", "th": "th-th", "vn": "vn-vi", "za": "za-en",
}

// Tokens 解析逗号分隔的地区字符串，返回去重后的 token，保持首次出现的顺序
func Tokens(raw string) []string {
	if raw == "" {
		return []string{DefaultToken}
	}
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// Code 返回 token 对应的 provider 地区代码，未知 token 返回 FallbackCode
func Code(token string) string {
	if code, ok := codes[token]; ok {
		return code
	}
	return FallbackCode
}

// Resolve 将原始 kl 参数解析为 provider 地区代码列表，与 Tokens 顺序一致
func Resolve(raw string) []string {
	tokens := Tokens(raw)
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = Code(token)
	}
	return out
}
