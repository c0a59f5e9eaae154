package model

// MaxCartItemQuantity matches a positive small integer column.
const MaxCartItemQuantity = int64(32767)

// (cart_id, snippet_id) は一意。同じsnippetを追加したら数量を加算する。
type CartItem struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	CartID    string   `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_snippet"`
	SnippetID int64    `gorm:"not null;uniqueIndex:idx_cart_items_cart_snippet"`
	Snippet   *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE"`
	Quantity  int64    `gorm:"not null"`
}

// TotalPrice uses the snippet's current unit price; zero when the snippet is not loaded.
func (i *CartItem) TotalPrice() int64 {
	if i.Snippet == nil {
		return 0
	}
	return i.Quantity * i.Snippet.UnitPrice
}
