package exercise

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/exerciselog/internal/model"
)

// dateLayouts は日付として受け付ける書式。上から順に試す。
// タイムゾーンを含まない書式はUTCとして解釈する。
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan 02 2006",
	"Jan 2 2006",
	"January 2, 2006",
}

// DisplayDateLayout は登録結果で返す日付の書式。例: "Mon Jan 02 2023"
const DisplayDateLayout = "Mon Jan 02 2006"

// ParseDate は日付文字列を解釈する。解釈できない場合はfalseを返す。
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDuration は運動時間（分）を数値に変換する。
// 空文字列は未指定としてnilとtrueを返す。数値でない場合（NaN、無限大を含む）はfalseを返す。
func ParseDuration(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

// ParseLimit は件数制限を解釈する。
// 先頭の数字部分のみを読み取る（"3abc"は3）。負の値は絶対値を上限とする（"-2"は2）。
// 数字で始まらない場合や0は0（制限なし）を返す。
func ParseLimit(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	if n < 0 {
		n = -n
	}
	return n
}

// BuildLogFilter はクエリパラメータから検索条件を組み立てる。
func BuildLogFilter(q LogQuery) model.LogFilter {
	filter := model.LogFilter{Limit: ParseLimit(q.Limit)}
	if from, ok := ParseDate(q.From); ok {
		filter.From = &from
	}
	if to, ok := ParseDate(q.To); ok {
		filter.To = &to
	}
	return filter
}
