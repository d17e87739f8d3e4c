package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
)

// CartService owns cart and wishlist mutations. Adding a product copies
// its catalog fields into the cart line; that snapshot, not the live
// catalog, is what checkout later freezes into the order.
type CartService struct {
	carts    repository.CartStore
	products repository.ProductRepository
}

func NewCartService(carts repository.CartStore, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:            product.ID,
			Name:                 product.Name,
			Price:                product.Price,
			Quantity:             quantity,
			Category:             product.Category,
			ImageURL:             product.ImageURL,
			RequiresPrescription: product.RequiresPrescription,
		})
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ToggleWishlist adds the product to the wishlist, or removes it if
// already present, returning the updated list.
func (s *CartService) ToggleWishlist(ctx context.Context, userID, productID string) ([]string, error) {
	ids, err := s.carts.GetWishlist(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := ids[:0]
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, productID)
	}

	if err := s.carts.SaveWishlist(ctx, userID, out); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}
