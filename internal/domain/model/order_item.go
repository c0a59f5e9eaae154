package model

// unit_priceは注文時点の価格を保存する。
type OrderItem struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	OrderID   int64    `gorm:"not null;index"`
	SnippetID int64    `gorm:"not null;index"`
	Snippet   *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:RESTRICT"`
	Quantity  int64    `gorm:"not null"`
	UnitPrice int64    `gorm:"not null"`
}
