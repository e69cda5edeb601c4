package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/pricing"
)

// Service owns cart mutations for a user session. Reads go through
// singleflight so concurrent requests for the same session hit the
// store once.
type Service struct {
	store   SessionStore
	pricing pricing.Config
	sfg     singleflight.Group
}

func NewService(store SessionStore, pricingCfg pricing.Config) *Service {
	return &Service{
		store:   store,
		pricing: pricingCfg,
	}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.store.Get(ctx, userID)
		if errors.Is(err, ErrCartNotFound) {
			return domain.NewCart(userID), nil
		}
		if err != nil {
			return nil, err
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

func (s *Service) AddItem(ctx context.Context, userID string, item domain.LineItem) (*domain.Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(item)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// UpdateQuantity sets the quantity on the (product, variant) line.
// Zero or negative quantity removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, productID int64, variant string, quantity int32) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.UpdateQuantity(productID, variant, quantity)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID string, productID int64, variant string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID, variant)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *Service) ClearCart(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		log.Printf("clear cart for user %s failed: %v", userID, err)
		return err
	}
	return nil
}

// Totals recomputes pricing for the current cart state on every call.
func (s *Service) Totals(ctx context.Context, userID string) (domain.CartTotals, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return domain.CartTotals{}, err
	}
	return pricing.ComputeTotals(cart.Items, s.pricing), nil
}
