package models

import "time"

// EmailPreference is addressed by Token from unauthenticated unsubscribe links.
type EmailPreference struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        *string   `gorm:"column:user_id"`
	Email         string    `gorm:"column:email;not null;uniqueIndex"`
	Token         string    `gorm:"column:token;not null;uniqueIndex"`
	Newsletter    bool      `gorm:"column:newsletter;not null;default:false"`
	Marketing     bool      `gorm:"column:marketing;not null;default:false"`
	Transactional bool      `gorm:"column:transactional;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
