// Package adapters はcounterフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"counter_backend/internal/feature/counter/domain/entity"
	"counter_backend/internal/feature/counter/usecase"
)

// counterGorm はCounterRepositoryインターフェースのGORM実装です。
// SQLiteとMySQLの両方で同じクエリが動作します。
type counterGorm struct {
	db *gorm.DB
}

// counterGormがCounterRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CounterRepository = (*counterGorm)(nil)

// NewCounterGorm は指定されたgorm.DB接続でcounterGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewCounterGorm(db *gorm.DB) *counterGorm {
	return &counterGorm{db: db}
}

// FindOrCreate は(userID, date)のカウンターを取得し、
// 存在しない場合はcount=0で遅延作成します。
func (r *counterGorm) FindOrCreate(ctx context.Context, userID uint, date string) (*entity.Counter, error) {
	var c entity.Counter
	err := r.db.WithContext(ctx).
		Where(entity.Counter{UserID: userID, Date: date}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementAndGet は(userID, date)のカウンターをアトミックに+1します。
// 単一のupsert文（INSERT ... ON CONFLICT (user_id, date) DO UPDATE SET count = count + 1）
// なので、read-modify-writeのロストアップデートは発生しません。
func (r *counterGorm) IncrementAndGet(ctx context.Context, userID uint, date string) (uint, error) {
	row := entity.Counter{UserID: userID, Date: date, Count: 1}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + 1"),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}

	// upsertのconflict経路ではrowに更新後の値が反映されないため読み直す
	var out entity.Counter
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&out).Error; err != nil {
		return 0, err
	}
	return out.Count, nil
}

// ResetIfExists は(userID, date)のカウンターを0に戻します。
// 行が存在しない場合は何もせず、新しい行も作成しません。
func (r *counterGorm) ResetIfExists(ctx context.Context, userID uint, date string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Counter{}).
		Where("user_id = ? AND date = ?", userID, date).
		Update("count", 0).Error
}
