package model

type SnippetCategory struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Title string `gorm:"type:varchar(255);not null"`
}

func (c SnippetCategory) String() string {
	return c.Title
}
