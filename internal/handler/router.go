package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/marubatsu/internal/metrics"
	"github.com/hitoshi/marubatsu/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// ヘルスチェック
	HealthChecker HealthChecker

	// メトリクス
	MetricsGatherer prometheus.Gatherer
	MetricsRecorder middleware.HTTPMetricsRecorder

	// ゲーム記録サービス
	RecordService RecordServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Metrics
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))

	gameHandler := NewGameHandler(deps.RecordService)

	// --- レート制限の外のルート ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api", func(r chi.Router) {
			// POST /api/games - ゲーム記録提出（提出専用レート制限を追加）
			r.With(deps.RateLimiter.SubmitMiddleware()).Post("/games", gameHandler.SubmitGame)

			// GET /api/games - 直近のゲーム記録一覧
			r.Get("/games", gameHandler.ListGames)

			// GET /api/stats - 集計統計
			r.Get("/stats", gameHandler.GetStats)
		})
	})

	return r
}
