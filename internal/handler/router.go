package handler

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/exerciselog/internal/metrics"
	"github.com/hitoshi/exerciselog/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           middleware.HTTPMetricsRecorder

	// 運用エンドポイント
	HealthChecker   HealthChecker
	MetricsGatherer prometheus.Gatherer

	// 静的ファイル
	Views  fs.FS
	Public fs.FS

	// ユーザー・運動記録
	ExerciseService ExerciseServiceInterface
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RealIP → Recovery → Logging → Metrics → SecurityHeaders → CORS → RateLimit
//
// Metrics、RateLimiterが未設定の場合はそのミドルウェアを省略する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	staticHandler := NewStaticHandler(deps.Views, deps.Public)

	// 運用エンドポイント
	r.Get("/health", Health(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// ユーザー・運動記録API
	r.Route("/api/exercise", func(r chi.Router) {
		r.Post("/new-user", exerciseHandler.CreateUser)
		r.Get("/users", exerciseHandler.ListUsers)
		r.Post("/add", exerciseHandler.AddExercise)
		r.Get("/log", exerciseHandler.GetLog)
	})

	// ランディングページと公開アセット
	r.Get("/", staticHandler.Index)
	r.Get("/*", staticHandler.Public)

	return r
}
