package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"
)

type SimpleSnippetDTO struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	UnitPrice model.Money `json:"unit_price"`
}

type CartItemDTO struct {
	ID         int64            `json:"id"`
	Snippet    SimpleSnippetDTO `json:"snippet"`
	Quantity   int64            `json:"quantity"`
	TotalPrice model.Money      `json:"total_price"`
}

type CartDTO struct {
	ID          string        `json:"id"`
	CreatedDate time.Time     `json:"created_date"`
	Items       []CartItemDTO `json:"items"`
	TotalPrice  model.Money   `json:"total_price"`
}

type AddCartItemInput struct {
	SnippetID int64 `json:"snippet_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,min=1,max=32767"`
}

// 数量だけ書き換えられる
type UpdateCartItemInput struct {
	Quantity int64 `json:"quantity" validate:"required,min=1,max=32767"`
}

// CartUsecase は匿名カート /carts と明細 /carts/:cart_id/items の業務ロジック。
type CartUsecase struct {
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	tx        repo.TransactionManager
}

func NewCartUsecase(carts repo.CartRepository, cartItems repo.CartItemRepository, tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{carts: carts, cartItems: cartItems, tx: tx}
}

func (u *CartUsecase) Create(ctx context.Context) (CartDTO, error) {
	cart, err := u.carts.Create(ctx)
	if err != nil {
		return CartDTO{}, fromRepo(err)
	}
	return toCartDTO(&cart), nil
}

func (u *CartUsecase) Get(ctx context.Context, cartID string) (CartDTO, error) {
	if !validCartID(cartID) {
		return CartDTO{}, errNotFound()
	}
	cart, err := u.carts.FindByID(ctx, cartID)
	if err != nil {
		return CartDTO{}, fromRepo(err)
	}
	return toCartDTO(&cart), nil
}

func (u *CartUsecase) Delete(ctx context.Context, cartID string) error {
	if !validCartID(cartID) {
		return errNotFound()
	}
	return fromRepo(u.carts.Delete(ctx, cartID))
}

func (u *CartUsecase) ListItems(ctx context.Context, cartID string) ([]CartItemDTO, error) {
	if err := u.ensureCart(ctx, cartID); err != nil {
		return nil, err
	}
	items, err := u.cartItems.ListByCartID(ctx, cartID)
	if err != nil {
		return nil, fromRepo(err)
	}
	out := make([]CartItemDTO, 0, len(items))
	for i := range items {
		out = append(out, toCartItemDTO(&items[i]))
	}
	return out, nil
}

func (u *CartUsecase) GetItem(ctx context.Context, cartID string, itemID int64) (CartItemDTO, error) {
	if !validCartID(cartID) {
		return CartItemDTO{}, errNotFound()
	}
	item, err := u.cartItems.FindByID(ctx, cartID, itemID)
	if err != nil {
		return CartItemDTO{}, fromRepo(err)
	}
	return toCartItemDTO(&item), nil
}

var errQuantityTooLarge = fieldError("quantity", fmt.Sprintf("Ensure this value is less than or equal to %d.", model.MaxCartItemQuantity))

// AddItem はカートに追加（同一snippetは数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, in AddCartItemInput) (CartItemDTO, error) {
	if err := u.ensureCart(ctx, cartID); err != nil {
		return CartItemDTO{}, err
	}

	var item model.CartItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Snippets().FindByID(ctx, in.SnippetID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return fieldError("snippet_id", "No snippet with the given ID was found.")
			}
			return err
		}

		var err error
		item, err = r.CartItems().UpsertByCartAndSnippet(ctx, cartID, in.SnippetID, in.Quantity)
		if err != nil {
			return err
		}
		// 加算後が上限を超えたらロールバック
		if item.Quantity > model.MaxCartItemQuantity {
			return errQuantityTooLarge
		}
		return nil
	})
	if err != nil {
		return CartItemDTO{}, fromRepo(err)
	}
	return toCartItemDTO(&item), nil
}

func (u *CartUsecase) UpdateItem(ctx context.Context, cartID string, itemID int64, in UpdateCartItemInput) (CartItemDTO, error) {
	if !validCartID(cartID) {
		return CartItemDTO{}, errNotFound()
	}
	if err := u.cartItems.UpdateQuantity(ctx, cartID, itemID, in.Quantity); err != nil {
		return CartItemDTO{}, fromRepo(err)
	}
	return u.GetItem(ctx, cartID, itemID)
}

func (u *CartUsecase) DeleteItem(ctx context.Context, cartID string, itemID int64) error {
	if !validCartID(cartID) {
		return errNotFound()
	}
	return fromRepo(u.cartItems.Delete(ctx, cartID, itemID))
}

func (u *CartUsecase) ensureCart(ctx context.Context, cartID string) error {
	if !validCartID(cartID) {
		return errNotFound()
	}
	ok, err := u.carts.Exists(ctx, cartID)
	if err != nil {
		return fromRepo(err)
	}
	if !ok {
		return errNotFound()
	}
	return nil
}

func toCartItemDTO(it *model.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:         it.ID,
		Quantity:   it.Quantity,
		TotalPrice: model.Money(it.TotalPrice()),
	}
	if it.Snippet != nil {
		dto.Snippet = SimpleSnippetDTO{ID: it.Snippet.ID, Title: it.Snippet.Title, UnitPrice: model.Money(it.Snippet.UnitPrice)}
	} else {
		dto.Snippet = SimpleSnippetDTO{ID: it.SnippetID}
	}
	return dto
}

func toCartDTO(c *model.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, toCartItemDTO(&c.Items[i]))
	}
	return CartDTO{
		ID:          c.ID,
		CreatedDate: c.CreatedDate,
		Items:       items,
		TotalPrice:  model.Money(c.TotalPrice()),
	}
}
