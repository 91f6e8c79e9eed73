package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "counter_backend/internal/feature/auth/transport/handler"
	counterhandler "counter_backend/internal/feature/counter/transport/handler"
	"counter_backend/internal/platform/http/handler"
	"counter_backend/internal/platform/identity"
	"counter_backend/internal/platform/ratelimiter"
)

func NewRouter(authHandler *authhandler.AuthHandler, counter *counterhandler.CounterHandler) *gin.Engine {
	r := gin.Default()

	// CORS: ブラウザクライアント向けに全オリジンを許可し、
	// ベアラー識別ヘッダーを明示的に許可する
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, identity.HeaderUserID, "Authorization")
	r.Use(cors.New(corsCfg))

	// 識別不要
	// 導通確認用
	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health)
	// デフォルトユーザーのプロビジョニング（冪等）
	r.GET("/setup", authHandler.Setup)
	// ログイン（ユーザーID + セッショントークン発行）
	// ブルートフォース緩和のため試行頻度を制限する
	loginLimiter := ratelimiter.NewRateLimiter(30, time.Minute)
	r.POST("/login", func(c *gin.Context) { loginLimiter.WaitIfNeeded() }, authHandler.Login)

	// 識別必須のルート
	// r.Group("/") でルートグループを作成
	id := r.Group("/")
	// identity.Required() ミドルウェアを適用
	// → リクエストに Bearer トークンまたは x-user-id ヘッダーが必要になる
	id.Use(identity.Required())
	{
		id.GET("/counter", counter.Get)
		id.POST("/counter", counter.Increment)
		id.POST("/counter/reset", counter.Reset)
		id.POST("/logout", authHandler.Logout)
	}

	return r
}
