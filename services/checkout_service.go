package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
	"github.com/voyagelab/travel-backend/repository"
)

// IdempotencyStore remembers which order a checkout idempotency key produced.
// Get returns "" for an unseen key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, orderID string) error
}

// OrderCreatedEvent is published after a checkout commits.
type OrderCreatedEvent struct {
	Event     string    `json:"event"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     string    `json:"total"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEventPublisher emits order lifecycle events to the message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

// CheckoutService converts a non-empty cart into a persisted order and
// empties the cart, atomically. This is the one component in the system where
// a half-completed write (order created, cart still populated) would be a
// real correctness hazard: it enables double-checkout.
type CheckoutService struct {
	uow       repository.UnitOfWork
	orders    repository.OrderRepository
	idem      IdempotencyStore
	publisher OrderEventPublisher
	log       *zap.Logger
}

// NewCheckoutService wires the committer. idem and publisher may be nil,
// which disables idempotency-key replay and event publishing respectively.
func NewCheckoutService(
	uow repository.UnitOfWork,
	orders repository.OrderRepository,
	idem IdempotencyStore,
	publisher OrderEventPublisher,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{uow: uow, orders: orders, idem: idem, publisher: publisher, log: log}
}

// Checkout places an order from the user's current cart.
//
// The cart read, the pricing of every item, the order+items insert and the
// cart delete all run inside a single transaction holding a per-user advisory
// lock. A concurrent second checkout for the same user serializes behind the
// lock, observes the emptied cart and fails with an empty-cart error, so one
// cart produces at most one order.
func (s *CheckoutService) Checkout(ctx context.Context, userID, idempotencyKey string) (*models.Order, error) {
	if replayed, err := s.replay(ctx, userID, idempotencyKey); err != nil || replayed != nil {
		return replayed, err
	}

	var order *models.Order
	err := s.uow.WithinUserTx(ctx, userID, func(r *repository.Repositories) error {
		items, err := r.Carts.ListForUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperrors.EmptyCart()
		}

		built, err := buildOrder(userID, items)
		if err != nil {
			return err
		}
		if err := r.Orders.Create(ctx, built); err != nil {
			return err
		}
		if err := r.Carts.Clear(ctx, userID); err != nil {
			return err
		}
		order = built
		return nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.log.Error("checkout transaction failed", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Transaction(err)
	}

	s.afterCommit(ctx, order, idempotencyKey)
	return order, nil
}

// replay returns the previously created order when the idempotency key has
// been seen before.
func (s *CheckoutService) replay(ctx context.Context, userID, key string) (*models.Order, error) {
	if s.idem == nil || key == "" {
		return nil, nil
	}
	orderID, err := s.idem.Get(ctx, key)
	if err != nil {
		// The idempotency store is an optimization; if it is unreachable we
		// still rely on the empty-cart check to stop duplicates.
		s.log.Warn("idempotency lookup failed", zap.Error(err))
		return nil, nil
	}
	if orderID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, nil
	}
	return s.orders.ByIDAndUser(ctx, id, userID)
}

// afterCommit runs the best-effort side effects. Failures here are logged and
// never un-commit the order.
func (s *CheckoutService) afterCommit(ctx context.Context, order *models.Order, idempotencyKey string) {
	if s.idem != nil && idempotencyKey != "" {
		if err := s.idem.Set(ctx, idempotencyKey, order.ID.String()); err != nil {
			s.log.Warn("failed to record idempotency key", zap.Error(err))
		}
	}
	if s.publisher != nil {
		event := OrderCreatedEvent{
			Event:     "order.created",
			OrderID:   order.ID.String(),
			UserID:    order.UserID,
			Total:     order.Total.StringFixed(2),
			ItemCount: len(order.Items),
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			s.log.Warn("failed to publish order.created", zap.String("order_id", event.OrderID), zap.Error(err))
		}
	}
}

// buildOrder snapshots the cart into an order. Prices and metadata are
// captured from the catalog at this instant and never recomputed.
func buildOrder(userID string, items []models.CartItem) (*models.Order, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero

	for i := range items {
		item := &items[i]
		price, err := PriceOf(item)
		if err != nil {
			return nil, err
		}

		var name string
		switch item.ItemType {
		case models.ItemTypePackage:
			name = item.Package.Name
		case models.ItemTypeTrip:
			name = item.Trip.Name
		}

		orderItems = append(orderItems, models.OrderItem{
			ItemType:  item.ItemType,
			PackageID: item.PackageID,
			TripID:    item.TripID,
			Quantity:  item.Quantity,
			Price:     price,
			Metadata: models.OrderItemMetadata{
				Name:          name,
				OriginalPrice: price,
			},
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return &models.Order{
		UserID: userID,
		Total:  total,
		Items:  orderItems,
	}, nil
}
