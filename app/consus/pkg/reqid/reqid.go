package reqid

import (
	"context"
	"net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Header 请求 ID 所在的 HTTP 头
const Header = "X-Request-ID"

type ctxKey struct{}

// Filter 为每个请求确定请求 ID：沿用请求头中的值，否则生成新的 UUID
// 请求 ID 写入响应头并放入请求 context
func Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}

// NewContext 返回携带请求 ID 的 context
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext 取出请求 ID，不存在时返回空串
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Valuer 供 kratos 日志使用的请求 ID 字段
func Valuer() log.Valuer {
	return func(ctx context.Context) interface{} {
		return FromContext(ctx)
	}
}
