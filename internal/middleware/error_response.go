package middleware

import (
	"net/http"
)

// WriteTextError は共通エラー形式（text/plainのメッセージ本文）でエラーレスポンスを書き込む。
// ハンドラー、リカバリー、レート制限のすべてのエラーがこの形式で返る。
func WriteTextError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	w.Write([]byte(message))
}

// WriteInternalServerError は内部サーバーエラーのレスポンスを書き込む。
// 詳細はログのみに記録し、クライアントには固定のメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteTextError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
