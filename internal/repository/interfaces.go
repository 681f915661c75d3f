// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/exerciselog/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// List は全ユーザーを作成順で返す。
	List(ctx context.Context) ([]*model.User, error)
}

// ExerciseRepository は運動記録の永続化インターフェース。
// ユーザーとの関連（log/count）はこのインターフェースの検索メソッドとして表現する。
type ExerciseRepository interface {
	// Create は運動記録を作成する。
	Create(ctx context.Context, exercise *model.Exercise) error

	// ListByUser はユーザーの運動記録をfilterの条件で取得する。
	// 日付の昇順、同日内は登録順で返す。filter.Limitが正の場合はその件数までに制限する。
	ListByUser(ctx context.Context, userID string, filter model.LogFilter) ([]*model.Exercise, error)

	// CountByUser はfilterの日付条件に一致する運動記録の件数を返す。
	// filter.Limitは無視する。
	CountByUser(ctx context.Context, userID string, filter model.LogFilter) (int, error)
}
