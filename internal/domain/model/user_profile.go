package model

import "time"

type Membership string

const (
	MembershipGold   Membership = "G"
	MembershipSilver Membership = "S"
	MembershipBronze Membership = "B"
)

// Memberships maps each membership code to its label.
var Memberships = map[Membership]string{
	MembershipGold:   "Gold",
	MembershipSilver: "Silver",
	MembershipBronze: "Bronze",
}

// UserProfileはユーザーの追加情報。注文ではcustomerとして参照される。
type UserProfile struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	UserID     int64      `gorm:"not null;uniqueIndex"`
	Phone      *int32     `gorm:"column:phone"`
	BirthDate  *time.Time `gorm:"type:date"`
	Membership Membership `gorm:"type:varchar(1);not null;default:'B'"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"not null;autoUpdateTime"`
}
