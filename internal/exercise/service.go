// Package exercise はユーザー登録と運動記録のドメインロジックを提供する。
package exercise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/exerciselog/internal/model"
	"github.com/hitoshi/exerciselog/internal/repository"
	"github.com/hitoshi/exerciselog/internal/shortid"
)

// バリデーションエラーのモデル名
const (
	userModelName     = "User"
	exerciseModelName = "UserExercise"
)

var (
	// ErrUserIDRequired はログ取得時にuserIdが指定されていないことを表す。
	ErrUserIDRequired = errors.New("userId is required")
	// ErrUserNotFound はログ取得対象のユーザーが存在しないことを表す。
	ErrUserNotFound = errors.New("user not found")
)

// MetricsRecorder はサービス層が記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordUserCreated()
	RecordExerciseCreated()
}

// Service はユーザーと運動記録のサービス層。
type Service struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	metrics   MetricsRecorder
	now       func() time.Time
	newUserID func() string
}

// Option はServiceの生成オプション。
type Option func(*Service)

// WithClock は現在時刻の取得関数を差し替える。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics はメトリクスの記録先を設定する。
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithUserIDGenerator はユーザーIDの生成関数を差し替える。
func WithUserIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newUserID = gen }
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	users repository.UserRepository,
	exercises repository.ExerciseRepository,
	opts ...Option,
) *Service {
	s := &Service{
		users:     users,
		exercises: exercises,
		now:       time.Now,
		newUserID: shortid.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser は新しいユーザーを登録する。
// usernameが空の場合は*model.ValidationErrorを返す。
func (s *Service) CreateUser(ctx context.Context, username string) (*model.User, error) {
	verr := model.NewValidationError(userModelName)
	if username == "" {
		verr.AddRequired("username")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	user := &model.User{
		ID:        s.newUserID(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("ユーザーの登録に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordUserCreated()
	}
	slog.Info("ユーザーを登録しました", slog.String("user_id", user.ID))

	return user, nil
}

// ListUsers は登録済みの全ユーザーを返す。
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// AddExerciseInput は運動記録の登録リクエスト。
// 値はすべてリクエストで受け取った文字列のまま渡す。
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// ExerciseResult は運動記録の登録結果。
// 参照先のユーザーが存在しない場合、Userはnilになる。
type ExerciseResult struct {
	User     *model.User
	Exercise *model.Exercise
}

// AddExercise は運動記録を登録する。
//
// 参照先ユーザーの存在は検証しない。ユーザーが見つからなくても記録は保存され、
// 結果のUserがnilになるだけである。
// Dateが空の場合は呼び出し時点の現在時刻を使用する。
func (s *Service) AddExercise(ctx context.Context, in AddExerciseInput) (*ExerciseResult, error) {
	var user *model.User
	if in.UserID != "" {
		u, err := s.users.FindByID(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
		}
		user = u
	}

	exercise, err := s.buildExercise(in)
	if err != nil {
		return nil, err
	}

	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("運動記録の登録に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordExerciseCreated()
	}
	if user == nil {
		slog.Warn("存在しないユーザーの運動記録を登録しました", slog.String("user_id", in.UserID))
	}

	return &ExerciseResult{User: user, Exercise: exercise}, nil
}

// buildExercise は入力を検証・型変換してExerciseを組み立てる。
func (s *Service) buildExercise(in AddExerciseInput) (*model.Exercise, error) {
	verr := model.NewValidationError(exerciseModelName)

	if in.Description == "" {
		verr.AddRequired("description")
	}
	if in.UserID == "" {
		verr.AddRequired("userId")
	}

	duration, ok := ParseDuration(in.Duration)
	if !ok {
		verr.AddCast("duration", "Number", in.Duration)
	}

	now := s.now()
	date := now
	if in.Date != "" {
		d, ok := ParseDate(in.Date)
		if !ok {
			verr.AddCast("date", "Date", in.Date)
		}
		date = d
	}

	if verr.HasErrors() {
		return nil, verr
	}

	return &model.Exercise{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Description: in.Description,
		Duration:    duration,
		Date:        date.UTC(),
		CreatedAt:   now.UTC(),
	}, nil
}

// LogQuery はログ取得のクエリパラメータ。
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// UserLog はユーザーと、その運動記録・件数をまとめたもの。
type UserLog struct {
	User  *model.User
	Log   []*model.Exercise
	Count int
}

// GetLog はユーザーの運動記録を取得する。
//
// From/Toは解釈できた場合のみ範囲条件に使い、解釈できない値は未指定として扱う。
// Countは件数制限に関係なく条件に一致する全件数を返す。
func (s *Service) GetLog(ctx context.Context, q LogQuery) (*UserLog, error) {
	if q.UserID == "" {
		return nil, ErrUserIDRequired
	}

	user, err := s.users.FindByID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	filter := BuildLogFilter(q)

	log, err := s.exercises.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("運動記録の取得に失敗しました: %w", err)
	}

	count, err := s.exercises.CountByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("運動記録の件数取得に失敗しました: %w", err)
	}

	return &UserLog{User: user, Log: log, Count: count}, nil
}
