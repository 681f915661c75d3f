package exercise

import (
	"context"
	"sort"
	"sync"

	"github.com/hitoshi/exerciselog/internal/model"
)

// --- モック定義 ---

// mockUserRepo はrepository.UserRepositoryのモック実装。
type mockUserRepo struct {
	createFn   func(ctx context.Context, user *model.User) error
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
	listFn     func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []*model.User{}, nil
}

// memoryExerciseRepo は検索条件を実際に評価するインメモリの運動記録リポジトリ。
type memoryExerciseRepo struct {
	mu        sync.Mutex
	exercises []*model.Exercise
	createErr error
	listErr   error
	countErr  error
}

func (m *memoryExerciseRepo) Create(ctx context.Context, e *model.Exercise) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises = append(m.exercises, e)
	return nil
}

func (m *memoryExerciseRepo) match(userID string, filter model.LogFilter) []*model.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Exercise
	for _, e := range m.exercises {
		if e.UserID != userID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *memoryExerciseRepo) ListByUser(ctx context.Context, userID string, filter model.LogFilter) ([]*model.Exercise, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := m.match(userID, filter)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryExerciseRepo) CountByUser(ctx context.Context, userID string, filter model.LogFilter) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.match(userID, filter)), nil
}

// mockMetrics はMetricsRecorderのモック実装。
type mockMetrics struct {
	users     int
	exercises int
}

func (m *mockMetrics) RecordUserCreated()     { m.users++ }
func (m *mockMetrics) RecordExerciseCreated() { m.exercises++ }

// fixedUserRepo は1人のユーザーだけを返すUserRepository。
func fixedUserRepo(user *model.User) *mockUserRepo {
	return &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, nil
		},
	}
}
