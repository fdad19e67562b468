package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verona/verona/internal/metrics"
	"github.com/verona/verona/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	Logger            *slog.Logger
	RecordHTTPStatus  middleware.StatusRecorderFunc

	// メトリクス公開
	MetricsGatherer prometheus.Gatherer

	// サービス
	AuthService      AuthServiceInterface
	AuthConfig       AuthHandlerConfig
	AccountService   AccountServiceInterface
	ItineraryService ItineraryServiceInterface
	TripService      TripServiceInterface
	FeedService      FeedServiceInterface
	PaymentService   PaymentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → (SessionMiddleware)
//
// 認証フロー、ログイン状態照会、フィード閲覧、/health、/metricsは
// セッションなしでアクセスできる。それ以外の/api/*はセッション必須。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.RecordHTTPStatus))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	accountHandler := NewAccountHandler(deps.AccountService)
	itineraryHandler := NewItineraryHandler(deps.ItineraryService)
	tripHandler := NewTripHandler(deps.TripService)
	feedHandler := NewFeedHandler(deps.FeedService)
	paymentHandler := NewPaymentHandler(deps.PaymentService, deps.AuthConfig.BaseURL)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// OAuthフロー
	r.Get("/auth/google", authHandler.Login)
	r.Get("/oauth2callback", authHandler.Callback)
	r.Post("/auth/logout", authHandler.Logout)

	// ログイン状態の照会は未ログインでも200を返す
	r.Get("/api/auth-status", authHandler.Status)

	// フィード閲覧は公開
	r.Get("/api/feed", feedHandler.List)

	// --- セッション必須のルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))

		// プロフィール
		r.Post("/api/ulozit-profil", accountHandler.UpdateProfile)

		// 旅程生成
		r.Post("/api/vylet", itineraryHandler.Generate)

		// 旅程管理
		r.Get("/api/ulozene-vylety", tripHandler.List)
		r.Post("/api/ulozit-vylet", tripHandler.Create)
		r.Post("/api/upravit-vylet", tripHandler.Update)
		r.Delete("/api/smazat-vylet/{id}", tripHandler.Delete)
		r.Post("/api/nastavit-viditelnost", tripHandler.SetVisibility)

		// コメント
		r.Post("/api/pridat-komentar", tripHandler.AddComment)
		r.Post("/api/upravit-komentar", tripHandler.EditComment)
		r.Post("/api/smazat-komentar", tripHandler.DeleteComment)

		// フィード投稿
		r.Post("/api/pridat-do-feedu", feedHandler.Publish)
		r.Post("/api/upravit-feed", feedHandler.Edit)
		r.Delete("/api/smazat-feed/{id}", feedHandler.Delete)

		// 決済
		r.Post("/api/vytvorit-platbu", paymentHandler.CreateCheckout)
		r.Get("/api/platba-potvrzeni", paymentHandler.ConfirmCheckout)
	})

	return r
}
