package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
	"github.com/voyagelab/travel-backend/repository"
)

// memStore is an in-memory implementation of every repository interface,
// shared across the fake unit of work so checkout tests see one consistent
// data set.
type memStore struct {
	mu        sync.Mutex
	packages  map[uuid.UUID]models.Package
	services  map[uuid.UUID]models.Service
	trips     map[uuid.UUID]models.Trip
	tripSvcs  map[uuid.UUID][]models.TripService
	cartItems []models.CartItem
	orders    []models.Order
}

func newMemStore() *memStore {
	return &memStore{
		packages: make(map[uuid.UUID]models.Package),
		services: make(map[uuid.UUID]models.Service),
		trips:    make(map[uuid.UUID]models.Trip),
		tripSvcs: make(map[uuid.UUID][]models.TripService),
	}
}

func (s *memStore) addPackage(pkg models.Package) models.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	s.packages[pkg.ID] = pkg
	return pkg
}

func (s *memStore) addService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *memStore) deletePackage(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.packages, id)
}

// resolveTrip returns a copy of the trip with its services attached. A
// service missing from the catalog resolves to a nil Service pointer, which
// is how the pricing engine detects dangling references.
func (s *memStore) resolveTrip(id uuid.UUID) (models.Trip, bool) {
	trip, ok := s.trips[id]
	if !ok {
		return models.Trip{}, false
	}
	assocs := s.tripSvcs[id]
	trip.Services = make([]models.TripService, len(assocs))
	for i, ts := range assocs {
		trip.Services[i] = ts
		if svc, ok := s.services[ts.ServiceID]; ok {
			svcCopy := svc
			trip.Services[i].Service = &svcCopy
		}
	}
	return trip, true
}

// --- repository.CartRepository ---

func (s *memStore) AddItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cartItems {
		existing := &s.cartItems[i]
		if existing.UserID != item.UserID || existing.ItemType != item.ItemType {
			continue
		}
		samePackage := item.ItemType == models.ItemTypePackage &&
			existing.PackageID != nil && item.PackageID != nil && *existing.PackageID == *item.PackageID
		sameTrip := item.ItemType == models.ItemTypeTrip &&
			existing.TripID != nil && item.TripID != nil && *existing.TripID == *item.TripID
		if samePackage || sameTrip {
			existing.Quantity += item.Quantity
			out := *existing
			return &out, nil
		}
	}

	stored := *item
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	s.cartItems = append(s.cartItems, stored)
	out := stored
	return &out, nil
}

func (s *memStore) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cartItems {
		if s.cartItems[i].ID == itemID && s.cartItems[i].UserID == userID {
			s.cartItems = append(s.cartItems[:i], s.cartItems[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("cart item not found")
}

func (s *memStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cartItems[:0]
	for _, item := range s.cartItems {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.cartItems = kept
	return nil
}

func (s *memStore) ListForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.CartItem
	for _, item := range s.cartItems {
		if item.UserID != userID {
			continue
		}
		resolved := item
		if item.PackageID != nil {
			if pkg, ok := s.packages[*item.PackageID]; ok {
				pkgCopy := pkg
				resolved.Package = &pkgCopy
			}
		}
		if item.TripID != nil {
			if trip, ok := s.resolveTrip(*item.TripID); ok {
				resolved.Trip = &trip
			}
		}
		out = append(out, resolved)
	}
	return out, nil
}

// --- repository.OrderRepository ---

func (s *memStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders = append(s.orders, stored)
	return nil
}

func (s *memStore) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *memStore) ByIDAndUser(ctx context.Context, orderID uuid.UUID, userID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == orderID && order.UserID == userID {
			out := order
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("order not found")
}

// --- repository.TripRepository ---

func (s *memStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip.ID = uuid.New()
	s.trips[trip.ID] = *trip
	return nil
}

func (s *memStore) TripsForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Trip
	for id, trip := range s.trips {
		if trip.UserID == userID {
			resolved, _ := s.resolveTrip(id)
			out = append(out, resolved)
		}
	}
	return out, nil
}

func (s *memStore) ByTripIDAndUser(ctx context.Context, tripID uuid.UUID, userID string) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.resolveTrip(tripID)
	if !ok || trip.UserID != userID {
		return nil, apperrors.NotFound("trip not found")
	}
	return &trip, nil
}

func (s *memStore) AddTripService(ctx context.Context, tripID, serviceID uuid.UUID, quantity int) (*models.TripService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assocs := s.tripSvcs[tripID]
	for i := range assocs {
		if assocs[i].ServiceID == serviceID {
			assocs[i].Quantity += quantity
			out := assocs[i]
			return &out, nil
		}
	}
	ts := models.TripService{TripID: tripID, ServiceID: serviceID, Quantity: quantity}
	s.tripSvcs[tripID] = append(assocs, ts)
	return &ts, nil
}

func (s *memStore) RemoveTripService(ctx context.Context, tripID, serviceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assocs := s.tripSvcs[tripID]
	for i := range assocs {
		if assocs[i].ServiceID == serviceID {
			s.tripSvcs[tripID] = append(assocs[:i], assocs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("service not on trip")
}

// --- repository.CatalogRepository ---

func (s *memStore) ListPackages(ctx context.Context, filter repository.PackageFilter) ([]models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Package
	for _, pkg := range s.packages {
		out = append(out, pkg)
	}
	return out, nil
}

func (s *memStore) ListServices(ctx context.Context, filter repository.ServiceFilter) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Service
	for _, svc := range s.services {
		out = append(out, svc)
	}
	return out, nil
}

func (s *memStore) PackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pkg, ok := s.packages[id]; ok {
		out := pkg
		return &out, nil
	}
	return nil, apperrors.NotFound("package not found")
}

func (s *memStore) ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc, ok := s.services[id]; ok {
		out := svc
		return &out, nil
	}
	return nil, apperrors.NotFound("service not found")
}

// tripRepoAdapter maps the repository.TripRepository method set onto
// memStore's trip methods (their names differ from the order methods to keep
// memStore a single type).
type tripRepoAdapter struct{ s *memStore }

func (a tripRepoAdapter) Create(ctx context.Context, trip *models.Trip) error {
	return a.s.CreateTrip(ctx, trip)
}
func (a tripRepoAdapter) ForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	return a.s.TripsForUser(ctx, userID)
}
func (a tripRepoAdapter) ByIDAndUser(ctx context.Context, tripID uuid.UUID, userID string) (*models.Trip, error) {
	return a.s.ByTripIDAndUser(ctx, tripID, userID)
}
func (a tripRepoAdapter) AddService(ctx context.Context, tripID, serviceID uuid.UUID, quantity int) (*models.TripService, error) {
	return a.s.AddTripService(ctx, tripID, serviceID, quantity)
}
func (a tripRepoAdapter) RemoveService(ctx context.Context, tripID, serviceID uuid.UUID) error {
	return a.s.RemoveTripService(ctx, tripID, serviceID)
}

func (s *memStore) repos() *repository.Repositories {
	return &repository.Repositories{
		Carts:   s,
		Orders:  s,
		Trips:   tripRepoAdapter{s},
		Catalog: s,
	}
}

// fakeUnitOfWork serializes per-user work with a mutex and rolls the store
// back on error, mirroring the advisory-lock transaction of the gorm
// implementation.
type fakeUnitOfWork struct {
	store *memStore
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newFakeUnitOfWork(store *memStore) *fakeUnitOfWork {
	return &fakeUnitOfWork{store: store, locks: make(map[string]*sync.Mutex)}
}

func (u *fakeUnitOfWork) WithinUserTx(ctx context.Context, userID string, fn func(r *repository.Repositories) error) error {
	u.mu.Lock()
	lock, ok := u.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[userID] = lock
	}
	u.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	u.store.mu.Lock()
	cartSnap := append([]models.CartItem(nil), u.store.cartItems...)
	orderSnap := append([]models.Order(nil), u.store.orders...)
	u.store.mu.Unlock()

	if err := fn(u.store.repos()); err != nil {
		u.store.mu.Lock()
		u.store.cartItems = cartSnap
		u.store.orders = orderSnap
		u.store.mu.Unlock()
		return err
	}
	return nil
}

// fakeIdemStore is an in-memory IdempotencyStore.
type fakeIdemStore struct {
	mu   sync.Mutex
	keys map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{keys: make(map[string]string)}
}

func (s *fakeIdemStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *fakeIdemStore) Set(ctx context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = orderID
	return nil
}
