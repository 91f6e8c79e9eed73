// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"counter_backend/internal/api"
	"counter_backend/internal/feature/auth/domain/entity"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Setup はデフォルトユーザーをプロビジョニングします（冪等）。
	Setup(ctx context.Context) (*entity.User, error)
	// Login はユーザーを認証し、成功時にユーザーIDとセッショントークンを返します。
	Login(ctx context.Context, email, password string) (uint, string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Setup はデフォルトユーザー作成エンドポイントを処理します。
// - 何度呼んでもユーザー行は1つだけ作成される（upsert）
// - ストアエラー時は500を返却
// - 成功時はユーザーサマリー付きで200を返却
func (h *AuthHandler) Setup(c *gin.Context) {
	user, err := h.auth.Setup(c.Request.Context())
	if err != nil {
		slog.Error("setup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "setup failed"})
		return
	}
	slog.Info("default user provisioned", "email", user.Email, "id", user.ID)
	c.JSON(http.StatusOK, api.SetupResponse{
		Message: "Default user created successfully",
		User:    api.UserSummary{ID: user.ID, Email: user.Email},
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginRequestにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール未登録かパスワード誤りかは区別しない）
// - 成功時はユーザーIDとセッショントークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	userID, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{UserID: userID, Token: token})
}

// Logout はログアウトエンドポイントを処理します。
// サーバー側にセッション状態は存在しないため、常に成功の確認メッセージを返します。
// クライアントはこの呼び出しの成否に関わらずローカル状態を破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}
