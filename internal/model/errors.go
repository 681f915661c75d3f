package model

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// バリデーションエラーの種別
const (
	ValidationKindRequired = "required"
	ValidationKindCast     = "cast"
)

// FieldError は1フィールドのバリデーション失敗を表す。
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError は永続化前のスキーマチェックで検出されたエラーを表す。
// JSON表現はドキュメントストアのバリデーションエラー形式に合わせている。
type ValidationError struct {
	Model  string
	Errors map[string]FieldError
}

// NewValidationError は指定モデルの空のValidationErrorを生成する。
func NewValidationError(modelName string) *ValidationError {
	return &ValidationError{
		Model:  modelName,
		Errors: make(map[string]FieldError),
	}
}

// AddRequired は必須フィールド未指定のエラーを追加する。
func (e *ValidationError) AddRequired(path string) {
	e.Errors[path] = FieldError{
		Message: fmt.Sprintf("Path `%s` is required.", path),
		Kind:    ValidationKindRequired,
		Path:    path,
	}
}

// AddCast は型変換失敗のエラーを追加する。
func (e *ValidationError) AddCast(path, typeName string, value string) {
	e.Errors[path] = FieldError{
		Message: fmt.Sprintf("Cast to %s failed for value %q at path %q", typeName, value, path),
		Kind:    ValidationKindCast,
		Path:    path,
		Value:   value,
	}
}

// HasErrors はエラーが1件以上あるかを返す。
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Paths はエラーのあるフィールド名をソート済みで返す。
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Errors))
	for p := range e.Errors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FirstMessage は最初のフィールドエラーのメッセージを返す。
func (e *ValidationError) FirstMessage() string {
	paths := e.Paths()
	if len(paths) == 0 {
		return ""
	}
	return e.Errors[paths[0]].Message
}

// Summary はモデル単位の要約メッセージを返す。例: "User validation failed"
func (e *ValidationError) Summary() string {
	return e.Model + " validation failed"
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, p := range e.Paths() {
		parts = append(parts, p+": "+e.Errors[p].Message)
	}
	return e.Summary() + ": " + strings.Join(parts, ", ")
}

// ValidationErrorBody はValidationErrorのJSONレスポンス形式。
type ValidationErrorBody struct {
	Errors         map[string]FieldError `json:"errors"`
	SummaryMessage string                `json:"_message"`
	Message        string                `json:"message"`
	Name           string                `json:"name"`
}

// Body はレスポンス用の構造体に変換する。
func (e *ValidationError) Body() ValidationErrorBody {
	return ValidationErrorBody{
		Errors:         e.Errors,
		SummaryMessage: e.Summary(),
		Message:        e.Error(),
		Name:           "ValidationError",
	}
}

// HTTPError はステータスコードとメッセージを持つ汎用エラー。
// 共通エラーハンドラーでテキストとして返される。
type HTTPError struct {
	Status  int
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// NewNotFoundError は未定義ルートへのアクセスを表すエラーを生成する。
func NewNotFoundError() *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: "not found"}
}
