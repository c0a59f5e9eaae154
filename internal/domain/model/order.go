package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P"
	PaymentStatusComplete PaymentStatus = "C"
	PaymentStatusFailed   PaymentStatus = "F"
)

var PaymentStatuses = map[PaymentStatus]string{
	PaymentStatusPending:  "Pending",
	PaymentStatusComplete: "Complete",
	PaymentStatusFailed:   "Failed",
}

type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement"`
	PlacedAt      time.Time     `gorm:"not null;autoCreateTime"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(1);not null;default:'P';index"`
	CustomerID    int64         `gorm:"not null;index"`
	Customer      *UserProfile  `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (o *Order) TotalPrice() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.UnitPrice * it.Quantity
	}
	return total
}
