// Package model はドメインモデルを定義する。
package model

import "time"

// User はエクササイズを記録するユーザーを表す。
// 作成後は変更されず、このサービスから削除されることもない。
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
