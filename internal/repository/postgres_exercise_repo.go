package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/hitoshi/exerciselog/internal/model"
)

// PostgresExerciseRepo はPostgreSQLを使用した運動記録リポジトリ。
type PostgresExerciseRepo struct {
	db *sql.DB
}

// NewPostgresExerciseRepo はPostgresExerciseRepoを生成する。
func NewPostgresExerciseRepo(db *sql.DB) *PostgresExerciseRepo {
	return &PostgresExerciseRepo{db: db}
}

// Create は運動記録を作成する。
func (r *PostgresExerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	var duration sql.NullFloat64
	if exercise.Duration != nil {
		duration = sql.NullFloat64{Float64: *exercise.Duration, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		exercise.ID, exercise.UserID, exercise.Description, duration, exercise.Date, exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exercise: %w", err)
	}
	return nil
}

// ListByUser はユーザーの運動記録をfilterの条件で取得する。
func (r *PostgresExerciseRepo) ListByUser(ctx context.Context, userID string, filter model.LogFilter) ([]*model.Exercise, error) {
	where, args := buildLogWhere(userID, filter)

	query := `SELECT id, user_id, description, duration, date, created_at FROM exercises WHERE ` +
		where + ` ORDER BY date ASC, created_at ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []*model.Exercise{}
	for rows.Next() {
		e := &model.Exercise{}
		var duration sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &duration, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		if duration.Valid {
			d := duration.Float64
			e.Duration = &d
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercises: %w", err)
	}

	return exercises, nil
}

// CountByUser はfilterの日付条件に一致する運動記録の件数を返す。
func (r *PostgresExerciseRepo) CountByUser(ctx context.Context, userID string, filter model.LogFilter) (int, error) {
	where, args := buildLogWhere(userID, filter)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM exercises WHERE `+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return count, nil
}

// buildLogWhere はユーザーIDと日付範囲からWHERE句と引数を構築する。
// 日付範囲が指定されていない場合は日付条件を含めない。
func buildLogWhere(userID string, filter model.LogFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, "date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, "date <= $"+strconv.Itoa(len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// compile-time interface check
var _ ExerciseRepository = (*PostgresExerciseRepo)(nil)
