package middleware

import "net/http"

// landingPageCSP はランディングページ(フォーム送信とスタイルシートのみ)向けのCSP。
// スクリプトは読み込まない。
const landingPageCSP = "default-src 'self'; script-src 'none'; object-src 'none'; form-action 'self'; frame-ancestors 'none'"

// securityHeaders は全レスポンスに付与するヘッダー。
var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Permissions-Policy":      "camera=(), microphone=(), geolocation=()",
	"Content-Security-Policy": landingPageCSP,
}

// NewSecurityHeadersMiddleware はセキュリティ関連のHTTPレスポンスヘッダーを付与するミドルウェアを返す。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range securityHeaders {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
