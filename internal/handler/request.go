package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/hitoshi/exerciselog/internal/model"
)

// maxBodyBytes はリクエストボディの上限サイズ。
const maxBodyBytes = 1 << 20

// errInvalidBody はリクエストボディを解釈できなかったことを表す。
var errInvalidBody = &model.HTTPError{Status: http.StatusBadRequest, Message: "invalid request body"}

// requestFields はJSONまたはフォームで送られたボディのフィールド値。
// 値はすべて文字列として保持し、型変換はサービス層で行う。
type requestFields map[string]string

// Get は指定フィールドの値を返す。未指定の場合は空文字列。
func (f requestFields) Get(key string) string {
	return f[key]
}

// parseRequestFields はContent-Typeに応じてJSONまたはフォームのボディを読み取る。
// JSONの数値や真偽値は文字列表現に変換する。
func parseRequestFields(w http.ResponseWriter, r *http.Request) (requestFields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return parseJSONFields(r.Body)
	}

	if err := r.ParseForm(); err != nil {
		return nil, errInvalidBody
	}
	fields := requestFields{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

func parseJSONFields(body io.Reader) (requestFields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return requestFields{}, nil
		}
		return nil, errInvalidBody
	}

	fields := make(requestFields, len(raw))
	for key, v := range raw {
		fields[key] = stringifyJSONValue(v)
	}
	return fields, nil
}

// stringifyJSONValue はJSONの値をフォーム値と同じ文字列表現に変換する。
func stringifyJSONValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
