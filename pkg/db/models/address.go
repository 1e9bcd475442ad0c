package models

import "time"

// Address is the shipping address captured at checkout.
type Address struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Line1      *string   `gorm:"column:line1"`
	Line2      *string   `gorm:"column:line2"`
	City       *string   `gorm:"column:city"`
	State      *string   `gorm:"column:state"`
	PostalCode *string   `gorm:"column:postal_code"`
	Country    *string   `gorm:"column:country"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
