package cache

import (
	"time"
)

// TimeUntilNextUTCMidnight は次のUTC午前0時までの期間を返します。
// カウンターはUTC日付単位なので、キャッシュエントリは日付境界を越えて生存しません。
func TimeUntilNextUTCMidnight() time.Duration {
	now := time.Now().UTC()

	// 翌日の午前0時を計算
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return midnight.Sub(now)
}
