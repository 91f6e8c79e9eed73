// Package usecase はcounterフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"counter_backend/internal/feature/counter/domain/entity"
)

// nowFunc はテストから差し替え可能な現在時刻のシームです。
var nowFunc = time.Now

// CounterRepository はカウンターエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CounterRepository interface {
	// FindOrCreate は(userID, date)のカウンターを取得します。
	// 存在しない場合はcount=0で遅延作成します。
	FindOrCreate(ctx context.Context, userID uint, date string) (*entity.Counter, error)

	// IncrementAndGet は(userID, date)のカウンターをアトミックに+1し、
	// 更新後の値を返します。行が存在しない場合はcount=1でupsertされます。
	IncrementAndGet(ctx context.Context, userID uint, date string) (uint, error)

	// ResetIfExists は(userID, date)のカウンターを0に戻します。
	// 行が存在しない場合は何もしません（新しい行は作成されません）。
	ResetIfExists(ctx context.Context, userID uint, date string) error
}

// UserChecker はユーザー存在確認のインターフェースを定義します。
// authフィーチャーのリポジトリ実装がこれを満たします。
type UserChecker interface {
	// ExistsByID はIDに一致するユーザーが存在するかを返します。
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// counterUsecase は日次カウンターのビジネスロジックを実装します。
type counterUsecase struct {
	counters CounterRepository
	users    UserChecker
}

// NewCounterUsecase はcounterUsecaseの新しいインスタンスを生成します。
func NewCounterUsecase(counters CounterRepository, users UserChecker) *counterUsecase {
	return &counterUsecase{
		counters: counters,
		users:    users,
	}
}

// checkUser はベアラー識別子が既知のユーザーを指しているか検証します。
func (u *counterUsecase) checkUser(ctx context.Context, userID uint) error {
	ok, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// Today は本日（UTC日付境界）のカウンター値を返します。
// 当日の行が存在しない場合はcount=0で遅延作成されます。
func (u *counterUsecase) Today(ctx context.Context, userID uint) (uint, error) {
	if err := u.checkUser(ctx, userID); err != nil {
		return 0, err
	}
	counter, err := u.counters.FindOrCreate(ctx, userID, entity.Today(nowFunc()))
	if err != nil {
		return 0, fmt.Errorf("failed to load counter: %w", err)
	}
	return counter.Count, nil
}

// Increment は本日のカウンターを1進め、更新後の値を返します。
// ストレージ層のアトミックなupsert-and-incrementにより、同一ユーザー・同一日の
// 同時リクエストでも更新が失われることはありません。
func (u *counterUsecase) Increment(ctx context.Context, userID uint) (uint, error) {
	if err := u.checkUser(ctx, userID); err != nil {
		return 0, err
	}
	count, err := u.counters.IncrementAndGet(ctx, userID, entity.Today(nowFunc()))
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return count, nil
}

// Reset は本日のカウンターを0に戻します。
// 当日の行が存在しない場合はサイレントに何もしません。
func (u *counterUsecase) Reset(ctx context.Context, userID uint) error {
	if err := u.checkUser(ctx, userID); err != nil {
		return err
	}
	if err := u.counters.ResetIfExists(ctx, userID, entity.Today(nowFunc())); err != nil {
		return fmt.Errorf("failed to reset counter: %w", err)
	}
	return nil
}
