package model

type SnippetTag struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	Title     string   `gorm:"type:varchar(255);not null"`
	SnippetID int64    `gorm:"not null;index"`
	Snippet   *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE"`
}
