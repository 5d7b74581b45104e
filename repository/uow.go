package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the data-access interfaces bound to one storage
// handle, either the base connection or a transaction.
type Repositories struct {
	Carts   CartRepository
	Orders  OrderRepository
	Trips   TripRepository
	Catalog CatalogRepository
}

// NewRepositories builds the gorm-backed repository set over db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Carts:   NewGormCartRepository(db),
		Orders:  NewGormOrderRepository(db),
		Trips:   NewGormTripRepository(db),
		Catalog: NewGormCatalogRepository(db),
	}
}

// UnitOfWork runs a function against a repository set inside one atomic
// transaction, serialized per user. Checkout depends on this: the cart read,
// the order+items insert and the cart delete must commit or roll back as a
// whole, and two concurrent checkouts for the same user must not both observe
// the pre-clear cart.
type UnitOfWork interface {
	WithinUserTx(ctx context.Context, userID string, fn func(r *Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) WithinUserTx(ctx context.Context, userID string, fn func(r *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Transaction-scoped advisory lock keyed on the user. Released on
		// commit/rollback; the second of two concurrent checkouts blocks here
		// and then sees the already-emptied cart.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Error; err != nil {
			return err
		}
		return fn(NewRepositories(tx))
	})
}
