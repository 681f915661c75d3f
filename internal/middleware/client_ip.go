package middleware

import (
	"net"
	"net/http"
)

// ClientIP はリクエスト元のIPアドレスを返す。
// chiのRealIPミドルウェアの後段ではX-Forwarded-For等を反映したRemoteAddrを使う。
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
