package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/exerciselog/internal/middleware"
	"github.com/hitoshi/exerciselog/internal/model"
)

// writeError は共通エラー経路でエラーをテキストレスポンスに変換する。
//
//   - *model.ValidationError: 400 と最初のフィールドエラーのメッセージ
//   - *model.HTTPError: そのステータスとメッセージ
//   - それ以外: 500 "Internal Server Error"
func writeError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		middleware.WriteTextError(w, http.StatusBadRequest, verr.FirstMessage())
		return
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := httpErr.Message
		if message == "" {
			message = http.StatusText(status)
		}
		middleware.WriteTextError(w, status, message)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeValidationError はバリデーションエラーを構造化されたJSONで返す。
func writeValidationError(w http.ResponseWriter, verr *model.ValidationError) {
	writeJSON(w, http.StatusBadRequest, verr.Body())
}

// notFound は未定義ルートを共通エラー経路で404として返す。
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, model.NewNotFoundError())
}
