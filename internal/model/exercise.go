package model

import "time"

// Exercise はユーザーに紐づく1件の運動記録を表す。
// UserIDの参照先ユーザーの存在は書き込み時に検証しない。
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    *float64 // 分。未指定の場合はnil
	Date        time.Time
	CreatedAt   time.Time
}

// LogFilter は運動記録の検索条件。
// From/Toはnilの場合その境界での絞り込みを行わない。両端とも含む。
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int // 0以下は件数制限なし
}
