package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 匿名カート。IDはUUID。
type Cart struct {
	ID          string     `gorm:"type:varchar(36);primaryKey"`
	CreatedDate time.Time  `gorm:"not null;autoCreateTime"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TotalPrice is the sum of quantity * unit_price over the loaded items.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.TotalPrice()
	}
	return total
}
