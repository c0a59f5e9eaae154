package usecase

import (
	"context"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// txManagerMock は WithinTx の中で固定の repos を渡す
type txManagerMock struct {
	repos *txReposMock
	calls int
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

type txReposMock struct {
	users      *userRepoMock
	profiles   *profileRepoMock
	snippets   *snippetRepoMock
	carts      *cartRepoMock
	cartItems  *cartItemRepoMock
	orders     *orderRepoMock
	orderItems *orderItemRepoMock
	auditLogs  *auditLogRepoMock
}

func (r *txReposMock) Users() repo.UserRepository           { return r.users }
func (r *txReposMock) Profiles() repo.UserProfileRepository { return r.profiles }
func (r *txReposMock) Snippets() repo.SnippetRepository     { return r.snippets }
func (r *txReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *txReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// 全部のrepoモックを持つTxManagerを作る
func newTxMock() (*txManagerMock, *txReposMock) {
	r := &txReposMock{
		users:      &userRepoMock{},
		profiles:   &profileRepoMock{},
		snippets:   &snippetRepoMock{},
		carts:      &cartRepoMock{},
		cartItems:  &cartItemRepoMock{},
		orders:     &orderRepoMock{},
		orderItems: &orderItemRepoMock{},
		auditLogs:  &auditLogRepoMock{},
	}
	return &txManagerMock{repos: r}, r
}

// =====================
// Repository mocks
// =====================

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) List(ctx context.Context, page repo.Page) ([]model.User, int64, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *userRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type refreshTokenRepoMock struct{ mock.Mock }

func (m *refreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *refreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *refreshTokenRepoMock) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *refreshTokenRepoMock) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *refreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *refreshTokenRepoMock) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type profileRepoMock struct{ mock.Mock }

func (m *profileRepoMock) Create(ctx context.Context, p *model.UserProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *profileRepoMock) FindByID(ctx context.Context, id int64) (model.UserProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.UserProfile)
	return p, args.Error(1)
}

func (m *profileRepoMock) FindByUserID(ctx context.Context, userID int64) (model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.UserProfile)
	return p, args.Error(1)
}

func (m *profileRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.UserProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.UserProfile)
	return p, args.Error(1)
}

func (m *profileRepoMock) Update(ctx context.Context, p *model.UserProfile) error {
	return m.Called(ctx, p).Error(0)
}

type snippetRepoMock struct{ mock.Mock }

func (m *snippetRepoMock) List(ctx context.Context, q repo.SnippetListQuery) ([]model.Snippet, int64, error) {
	args := m.Called(ctx, q)
	s, _ := args.Get(0).([]model.Snippet)
	return s, args.Get(1).(int64), args.Error(2)
}

func (m *snippetRepoMock) FindByID(ctx context.Context, id int64) (model.Snippet, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Snippet)
	return s, args.Error(1)
}

func (m *snippetRepoMock) Create(ctx context.Context, s *model.Snippet) error {
	return m.Called(ctx, s).Error(0)
}

func (m *snippetRepoMock) Update(ctx context.Context, s *model.Snippet) error {
	return m.Called(ctx, s).Error(0)
}

func (m *snippetRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *snippetRepoMock) IDsByOwners(ctx context.Context, ownerIDs []int64) (map[int64][]int64, error) {
	args := m.Called(ctx, ownerIDs)
	ids, _ := args.Get(0).(map[int64][]int64)
	return ids, args.Error(1)
}

type categoryRepoMock struct{ mock.Mock }

func (m *categoryRepoMock) List(ctx context.Context, page repo.Page) ([]model.SnippetCategory, int64, error) {
	args := m.Called(ctx, page)
	c, _ := args.Get(0).([]model.SnippetCategory)
	return c, args.Get(1).(int64), args.Error(2)
}

func (m *categoryRepoMock) FindByID(ctx context.Context, id int64) (model.SnippetCategory, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.SnippetCategory)
	return c, args.Error(1)
}

func (m *categoryRepoMock) Create(ctx context.Context, c *model.SnippetCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *categoryRepoMock) Update(ctx context.Context, c *model.SnippetCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *categoryRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type tagRepoMock struct{ mock.Mock }

func (m *tagRepoMock) ListBySnippetID(ctx context.Context, snippetID int64, page repo.Page) ([]model.SnippetTag, int64, error) {
	args := m.Called(ctx, snippetID, page)
	t, _ := args.Get(0).([]model.SnippetTag)
	return t, args.Get(1).(int64), args.Error(2)
}

func (m *tagRepoMock) FindByID(ctx context.Context, snippetID, tagID int64) (model.SnippetTag, error) {
	args := m.Called(ctx, snippetID, tagID)
	t, _ := args.Get(0).(model.SnippetTag)
	return t, args.Error(1)
}

func (m *tagRepoMock) Create(ctx context.Context, tag *model.SnippetTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *tagRepoMock) Update(ctx context.Context, tag *model.SnippetTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *tagRepoMock) Delete(ctx context.Context, snippetID, tagID int64) error {
	return m.Called(ctx, snippetID, tagID).Error(0)
}

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) Create(ctx context.Context) (model.Cart, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) Exists(ctx context.Context, cartID string) (bool, error) {
	args := m.Called(ctx, cartID)
	return args.Bool(0), args.Error(1)
}

func (m *cartRepoMock) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type cartItemRepoMock struct{ mock.Mock }

func (m *cartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) FindByID(ctx context.Context, cartID string, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) UpsertByCartAndSnippet(ctx context.Context, cartID string, snippetID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, snippetID, addQty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) UpdateQuantity(ctx context.Context, cartID string, itemID int64, qty int64) error {
	return m.Called(ctx, cartID, itemID, qty).Error(0)
}

func (m *cartItemRepoMock) Delete(ctx context.Context, cartID string, itemID int64) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) Create(ctx context.Context, o *model.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *orderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *orderRepoMock) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type orderItemRepoMock struct{ mock.Mock }

func (m *orderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *orderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type auditLogRepoMock struct{ mock.Mock }

func (m *auditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *auditLogRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// その他
// =====================

type publisherMock struct{ mock.Mock }

func (m *publisherMock) PublishOrderCreated(ctx context.Context, ev model.OrderCreatedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type authValidatorMock struct{ mock.Mock }

func (m *authValidatorMock) ValidateRegister(ctx context.Context, in RegisterInput) error {
	return m.Called(ctx, in).Error(0)
}

var (
	_ repo.UserRepository            = (*userRepoMock)(nil)
	_ repo.RefreshTokenRepository    = (*refreshTokenRepoMock)(nil)
	_ repo.UserProfileRepository     = (*profileRepoMock)(nil)
	_ repo.SnippetRepository         = (*snippetRepoMock)(nil)
	_ repo.SnippetCategoryRepository = (*categoryRepoMock)(nil)
	_ repo.SnippetTagRepository      = (*tagRepoMock)(nil)
	_ repo.CartRepository            = (*cartRepoMock)(nil)
	_ repo.CartItemRepository        = (*cartItemRepoMock)(nil)
	_ repo.OrderRepository           = (*orderRepoMock)(nil)
	_ repo.OrderItemRepository       = (*orderItemRepoMock)(nil)
	_ repo.AuditLogRepository        = (*auditLogRepoMock)(nil)
	_ repo.TransactionManager        = (*txManagerMock)(nil)
	_ OrderEventPublisher            = (*publisherMock)(nil)
	_ AuthValidator                  = (*authValidatorMock)(nil)
)

func admin() *Actor { return &Actor{UserID: 1, Role: model.RoleAdmin} }
func member(id int64) *Actor {
	return &Actor{UserID: id, Role: model.RoleUser}
}

func statusOf(err error) int {
	if he, ok := AsHTTPError(err); ok {
		return he.Status
	}
	return 0
}
