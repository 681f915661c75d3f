package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/exerciselog/internal/exercise"
	"github.com/hitoshi/exerciselog/internal/model"
)

// isoDateLayout はログの日付に使うISO 8601形式（ミリ秒、UTC）。
const isoDateLayout = "2006-01-02T15:04:05.000Z"

// ExerciseServiceInterface はエクササイズハンドラーが必要とするサービスインターフェース。
type ExerciseServiceInterface interface {
	// CreateUser は新しいユーザーを登録する。
	CreateUser(ctx context.Context, username string) (*model.User, error)
	// ListUsers は全ユーザーを返す。
	ListUsers(ctx context.Context) ([]*model.User, error)
	// AddExercise は運動記録を登録する。参照先ユーザーが存在しなくても失敗しない。
	AddExercise(ctx context.Context, in exercise.AddExerciseInput) (*exercise.ExerciseResult, error)
	// GetLog はユーザーの運動記録と件数を返す。
	GetLog(ctx context.Context, q exercise.LogQuery) (*exercise.UserLog, error)
}

// ExerciseHandler はユーザーと運動記録のHTTPハンドラー。
type ExerciseHandler struct {
	service ExerciseServiceInterface
}

// NewExerciseHandler はExerciseHandlerを生成する。
func NewExerciseHandler(service ExerciseServiceInterface) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
	}
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// exerciseResponse は運動記録登録のAPIレスポンス。
// 参照先ユーザーが存在しない場合、username/idは出力しない。
type exerciseResponse struct {
	Username    string   `json:"username,omitempty"`
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description"`
	Duration    *float64 `json:"duration,omitempty"`
	Date        string   `json:"date"`
}

// logEntryResponse はログ内の1件の運動記録。
type logEntryResponse struct {
	Description string   `json:"description"`
	Duration    *float64 `json:"duration,omitempty"`
	Date        string   `json:"date"`
	UserID      string   `json:"userId"`
}

// userLogResponse はログ取得のAPIレスポンス。
type userLogResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Log      []logEntryResponse `json:"log"`
	Count    int                `json:"count"`
}

// logErrorResponse はログ取得中の想定外エラーのレスポンス。
type logErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// CreateUser はユーザー登録を処理する。
// POST /api/exercise/new-user
func (h *ExerciseHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	fields, err := parseRequestFields(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), fields.Get("username"))
	if err != nil {
		h.handleWriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// ListUsers は全ユーザーの一覧を返す。
// GET /api/exercise/users
func (h *ExerciseHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddExercise は運動記録の登録を処理する。
// POST /api/exercise/add
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	fields, err := parseRequestFields(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.AddExercise(r.Context(), exercise.AddExerciseInput{
		UserID:      fields.Get("userId"),
		Description: fields.Get("description"),
		Duration:    fields.Get("duration"),
		Date:        fields.Get("date"),
	})
	if err != nil {
		h.handleWriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExerciseResponse(result))
}

// GetLog はユーザーの運動記録を返す。
// GET /api/exercise/log?userId=&from=&to=&limit=
//
// userIdが未指定、またはユーザーが存在しない場合は空ボディの400を返す。
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userLog, err := h.service.GetLog(r.Context(), exercise.LogQuery{
		UserID: q.Get("userId"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Limit:  q.Get("limit"),
	})
	if err != nil {
		if errors.Is(err, exercise.ErrUserIDRequired) || errors.Is(err, exercise.ErrUserNotFound) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		slog.Error("failed to get exercise log",
			slog.String("user_id", q.Get("userId")),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadRequest, logErrorResponse{Name: "Error", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toUserLogResponse(userLog))
}

// handleWriteError は登録系エンドポイントのエラーを変換する。
// バリデーションエラーは構造化JSONの400、それ以外は共通エラー経路に渡す。
func (h *ExerciseHandler) handleWriteError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	writeError(w, err)
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}

func toExerciseResponse(res *exercise.ExerciseResult) exerciseResponse {
	resp := exerciseResponse{
		Description: res.Exercise.Description,
		Duration:    res.Exercise.Duration,
		Date:        res.Exercise.Date.UTC().Format(exercise.DisplayDateLayout),
	}
	if res.User != nil {
		resp.Username = res.User.Username
		resp.ID = res.User.ID
	}
	return resp
}

func toUserLogResponse(l *exercise.UserLog) userLogResponse {
	entries := make([]logEntryResponse, 0, len(l.Log))
	for _, e := range l.Log {
		entries = append(entries, logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        formatISODate(e.Date),
			UserID:      e.UserID,
		})
	}

	return userLogResponse{
		ID:       l.User.ID,
		Username: l.User.Username,
		Log:      entries,
		Count:    l.Count,
	}
}

func formatISODate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}
