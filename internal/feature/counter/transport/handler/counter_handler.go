// Package handler はcounterフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"counter_backend/internal/api"
	"counter_backend/internal/feature/counter/usecase"
	"counter_backend/internal/platform/identity"
)

// CounterUsecase は日次カウンター操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CounterUsecase interface {
	// Today は本日のカウンター値を返します（必要なら遅延作成）。
	Today(ctx context.Context, userID uint) (uint, error)
	// Increment は本日のカウンターを1進め、更新後の値を返します。
	Increment(ctx context.Context, userID uint) (uint, error)
	// Reset は本日のカウンターを0に戻します（存在しなければ何もしません）。
	Reset(ctx context.Context, userID uint) error
}

// CounterHandler は日次カウンターのHTTPリクエストを処理します。
// 識別子の解決はidentityミドルウェアが済ませている前提です。
type CounterHandler struct {
	counters CounterUsecase
}

// NewCounterHandler はCounterHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からCounterUsecaseを注入します。
func NewCounterHandler(counters CounterUsecase) *CounterHandler {
	return &CounterHandler{counters: counters}
}

// Get は本日のカウンター取得エンドポイントを処理します。
// - 未知ユーザーは404
// - ストアエラーは500
// - 成功時は{count}付きで200
func (h *CounterHandler) Get(c *gin.Context) {
	userID := c.GetUint(identity.ContextUserID)
	count, err := h.counters.Today(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "failed to get counter", err)
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{Count: count})
}

// Increment はカウンター加算エンドポイントを処理します。
// 成功時は加算後の値を{count}で返します。
func (h *CounterHandler) Increment(c *gin.Context) {
	userID := c.GetUint(identity.ContextUserID)
	count, err := h.counters.Increment(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "failed to increment counter", err)
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{Count: count})
}

// Reset はカウンターリセットエンドポイントを処理します。
// 新しい値ではなく確認メッセージを返します。
func (h *CounterHandler) Reset(c *gin.Context) {
	userID := c.GetUint(identity.ContextUserID)
	if err := h.counters.Reset(c.Request.Context(), userID); err != nil {
		h.respondError(c, "failed to reset counter", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Counter reset successfully"})
}

// respondError はユースケースエラーをHTTPステータスにマップします。
// 未知ユーザーは404、それ以外は内部の詳細を隠した汎用の500になります。
func (h *CounterHandler) respondError(c *gin.Context, msg string, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		return
	}
	slog.Error(msg, "error", err, "user_id", c.GetUint(identity.ContextUserID))
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msg})
}
