package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/mergington/internal/metrics"
	"github.com/hitoshi/mergington/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// レジストリ
	ActivityService ActivityServiceInterface

	// メトリクス
	Metrics     MetricsRecorder
	HTTPMetrics middleware.HTTPMetricsRecorder
	Gatherer    prometheus.Gatherer

	// 静的ファイル
	StaticDir string

	// CORS
	CORSAllowedOrigin string
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → SecurityHeadersMiddleware → RequestIDMiddleware →
//	LoggingMiddleware → MetricsMiddleware → RecoveryMiddleware
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	r.Use(middleware.NewRecoveryMiddleware())

	activityHandler := NewActivityHandler(deps.ActivityService, deps.Metrics)

	// 活動API
	r.Get("/activities", activityHandler.ListActivities)
	r.Route("/activities/{name}", func(r chi.Router) {
		r.Post("/signup", activityHandler.Signup)
		r.Delete("/unregister", activityHandler.Unregister)
	})

	// ルートはポータルのトップページへリダイレクトする
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})

	// 静的ファイル配信
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir)))
	r.Handle("/static/*", fileServer)

	// ヘルスチェック（healthcheckサブコマンドから利用）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheusスクレイプ用エンドポイント
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	return r
}
