package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/events"
)

// Service applies lifecycle transitions to persisted orders. Every
// status write goes through the guard table; there is no free-form
// status overwrite path, admin callers included.
type Service struct {
	repo   OrderRepository
	events events.Publisher
}

func NewService(repo OrderRepository, publisher events.Publisher) *Service {
	return &Service{repo: repo, events: publisher}
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByUserID(ctx, userID)
}

// Transition moves the order to target and persists the result. The
// in-memory guard runs first, so a rejected transition never reaches
// the store.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target domain.OrderStatus, tctx domain.TransitionContext) (*domain.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.Transition(target, tctx); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order transition: %w", err)
	}

	s.events.OrderStatusChanged(ctx, order, from)
	return order, nil
}
