// Package entity defines the domain entities for the counter feature.
package entity

import "time"

// DateLayout is the storage format for a counter's calendar day.
// Days are bounded in UTC; the column holds no time component.
const DateLayout = "2006-01-02"

// Counter is a per-user, per-calendar-day tally.
// The composite unique index on (user_id, date) makes the
// one-counter-per-day invariant structural rather than advisory.
type Counter struct {
	// ID is the unique identifier for the counter row.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user.
	UserID uint `gorm:"uniqueIndex:idx_counters_user_date;not null"`

	// Date is the UTC calendar day the counter applies to, in DateLayout form.
	Date string `gorm:"uniqueIndex:idx_counters_user_date;size:10;not null"`

	// Count is the non-negative tally for the day. It only grows through
	// Increment and returns to zero through Reset.
	Count uint `gorm:"not null;default:0"`

	// CreatedAt is the timestamp when the row was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the row was last updated.
	UpdatedAt time.Time
}

// Today returns the current UTC calendar day in DateLayout form.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
