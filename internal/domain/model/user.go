package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string     `gorm:"type:varchar(254);uniqueIndex;not null"`
	FirstName    string     `gorm:"type:varchar(150);not null;default:''"`
	LastName     string     `gorm:"type:varchar(150);not null;default:''"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'"`
	TokenVersion int        `gorm:"not null;default:0"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	DateJoined   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime"`
}

// IsStaff reports whether the user may manage shared resources.
func (u *User) IsStaff() bool {
	return u != nil && u.Role == RoleAdmin
}
