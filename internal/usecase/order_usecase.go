package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"snippetapi/internal/domain/model"
	"snippetapi/internal/logger"
	repo "snippetapi/internal/repository"
)

// OrderEventPublisher receives order_created after the order is committed.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, ev model.OrderCreatedEvent) error
}

type OrderItemDTO struct {
	ID        int64       `json:"id"`
	SnippetID int64       `json:"snippet_id"`
	Quantity  int64       `json:"quantity"`
	UnitPrice model.Money `json:"unit_price"`
}

type OrderDTO struct {
	ID            int64               `json:"id"`
	CustomerID    int64               `json:"customer_id"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Items         []OrderItemDTO      `json:"items"`
	TotalPrice    model.Money         `json:"total_price"`
}

type CreateOrderInput struct {
	CartID string `json:"cart_id" validate:"required,uuid"`
}

type UpdateOrderInput struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required,payment_status"`
}

type OrderUsecase struct {
	orders    repo.OrderRepository
	profiles  repo.UserProfileRepository
	tx        repo.TransactionManager
	publisher OrderEventPublisher
	log       logger.Logger
	pager     Paginator
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	profiles repo.UserProfileRepository,
	tx repo.TransactionManager,
	publisher OrderEventPublisher,
	log logger.Logger,
	pager Paginator,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		profiles:  profiles,
		tx:        tx,
		publisher: publisher,
		log:       log,
		pager:     pager,
	}
}

// 管理者は全件、それ以外は自分のプロフィールの注文だけ
func (u *OrderUsecase) List(ctx context.Context, actor *Actor, page int) (Page[OrderDTO], error) {
	if !actor.IsAuthenticated() {
		return Page[OrderDTO]{}, errUnauthenticated()
	}
	window, err := u.pager.Window(page)
	if err != nil {
		return Page[OrderDTO]{}, err
	}

	filter := repo.OrderListFilter{Page: window}
	if !actor.IsAdmin() {
		// プロフィールが無ければ注文も無い
		profile, err := u.profiles.FindByUserID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return newPage(u.pager, page, 0, []OrderDTO{})
		}
		if err != nil {
			return Page[OrderDTO]{}, fromRepo(err)
		}
		filter.CustomerID = &profile.ID
	}

	items, total, err := u.orders.List(ctx, filter)
	if err != nil {
		return Page[OrderDTO]{}, fromRepo(err)
	}
	out := make([]OrderDTO, 0, len(items))
	for i := range items {
		out = append(out, toOrderDTO(&items[i]))
	}
	return newPage(u.pager, page, total, out)
}

func (u *OrderUsecase) Get(ctx context.Context, actor *Actor, orderID int64) (OrderDTO, error) {
	if !actor.IsAuthenticated() {
		return OrderDTO{}, errUnauthenticated()
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderDTO{}, fromRepo(err)
	}

	if !actor.IsAdmin() {
		profile, err := u.profiles.FindByUserID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderDTO{}, errNotFound()
		}
		if err != nil {
			return OrderDTO{}, fromRepo(err)
		}
		// 他人の注文は存在しない扱い
		if profile.ID != o.CustomerID {
			return OrderDTO{}, errNotFound()
		}
	}
	return toOrderDTO(&o), nil
}

// Create はカートから注文を作り、カートを削除する。コミット後にorder_createdを送る。
func (u *OrderUsecase) Create(ctx context.Context, actor *Actor, in CreateOrderInput) (OrderDTO, error) {
	if !actor.IsAuthenticated() {
		return OrderDTO{}, errUnauthenticated()
	}

	var orderID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, in.CartID)
		if errors.Is(err, repo.ErrNotFound) {
			return fieldError("cart_id", "No cart with the given ID was found.")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return fieldError("cart_id", "The cart is empty.")
		}

		profile, err := r.Profiles().GetOrCreateByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}

		order := model.Order{CustomerID: profile.ID, PaymentStatus: model.PaymentStatusPending}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return err
		}

		// 価格は注文時点のものを保存
		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			if it.Snippet == nil {
				return errors.New("cart item without snippet")
			}
			items = append(items, model.OrderItem{
				SnippetID: it.SnippetID,
				Quantity:  it.Quantity,
				UnitPrice: it.Snippet.UnitPrice,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return err
		}

		if err := r.Carts().Delete(ctx, cart.ID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return OrderDTO{}, fromRepo(err)
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderDTO{}, fromRepo(err)
	}

	// 送信失敗で注文は取り消さない
	if err := u.publisher.PublishOrderCreated(ctx, model.NewOrderCreatedEvent(o, actor.UserID)); err != nil {
		u.log.Error("publish order_created failed", "order_id", o.ID, "error", err)
	}
	return toOrderDTO(&o), nil
}

func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, actor *Actor, orderID int64, in UpdateOrderInput) (OrderDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return OrderDTO{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, in.PaymentStatus); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionUpdatePaymentStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   mustJSON(map[string]string{"payment_status": string(before.PaymentStatus)}),
			AfterJSON:    mustJSON(map[string]string{"payment_status": string(in.PaymentStatus)}),
		})
	})
	if err != nil {
		return OrderDTO{}, fromRepo(err)
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderDTO{}, fromRepo(err)
	}
	return toOrderDTO(&o), nil
}

func (u *OrderUsecase) Delete(ctx context.Context, actor *Actor, orderID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		// 明細→注文の順に消す
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   mustJSON(toOrderDTO(&before)),
		})
	})
	if err != nil {
		return fromRepo(err)
	}
	return nil
}

func toOrderDTO(o *model.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ID:        it.ID,
			SnippetID: it.SnippetID,
			Quantity:  it.Quantity,
			UnitPrice: model.Money(it.UnitPrice),
		})
	}
	return OrderDTO{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: o.PaymentStatus,
		Items:         items,
		TotalPrice:    model.Money(o.TotalPrice()),
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
