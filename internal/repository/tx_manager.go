package repository

import "context"

// トランザクション内で使うリポジトリ群
type TxRepos interface {
	Users() UserRepository
	Profiles() UserProfileRepository
	Snippets() SnippetRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
