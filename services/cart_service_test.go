package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

func newCartFixture() (*memStore, *CartService) {
	store := newMemStore()
	return store, NewCartService(store, store, tripRepoAdapter{store})
}

func TestAddItemMergesDuplicateReference(t *testing.T) {
	store, svc := newCartFixture()
	ctx := context.Background()
	pkg := store.addPackage(models.Package{Name: "Paris Getaway", Price: dec("1200.00")})

	first, err := svc.AddItem(ctx, "user1", AddItemInput{PackageID: &pkg.ID, Quantity: 1})
	require.NoError(t, err)

	second, err := svc.AddItem(ctx, "user1", AddItemInput{PackageID: &pkg.ID, Quantity: 2})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID, "duplicate add must not create a second row")
	require.Equal(t, 3, second.Quantity)

	items, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func TestAddItemRequiresExactlyOneReference(t *testing.T) {
	store, svc := newCartFixture()
	ctx := context.Background()
	pkg := store.addPackage(models.Package{Name: "p", Price: dec("10.00")})
	tripID := uuid.New()

	_, err := svc.AddItem(ctx, "user1", AddItemInput{})
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.AddItem(ctx, "user1", AddItemInput{PackageID: &pkg.ID, TripID: &tripID})
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAddItemRejectsNegativeQuantity(t *testing.T) {
	store, svc := newCartFixture()
	pkg := store.addPackage(models.Package{Name: "p", Price: dec("10.00")})

	_, err := svc.AddItem(context.Background(), "user1", AddItemInput{PackageID: &pkg.ID, Quantity: -2})
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	store, svc := newCartFixture()
	pkg := store.addPackage(models.Package{Name: "p", Price: dec("10.00")})

	item, err := svc.AddItem(context.Background(), "user1", AddItemInput{PackageID: &pkg.ID})
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)
}

func TestAddItemUnknownPackage(t *testing.T) {
	_, svc := newCartFixture()
	missing := uuid.New()

	_, err := svc.AddItem(context.Background(), "user1", AddItemInput{PackageID: &missing})
	require.True(t, apperrors.IsNotFound(err))
}

func TestAddItemTripOwnedByAnotherUser(t *testing.T) {
	store, svc := newCartFixture()
	ctx := context.Background()

	trip := &models.Trip{UserID: "someone-else", Name: "their trip", Status: models.TripStatusDraft}
	require.NoError(t, store.CreateTrip(ctx, trip))

	_, err := svc.AddItem(ctx, "user1", AddItemInput{TripID: &trip.ID})
	require.True(t, apperrors.IsNotFound(err), "foreign trip must read as not found, not forbidden")
}

func TestRemoveItemScopedToOwner(t *testing.T) {
	store, svc := newCartFixture()
	ctx := context.Background()
	pkg := store.addPackage(models.Package{Name: "p", Price: dec("10.00")})

	item, err := svc.AddItem(ctx, "user1", AddItemInput{PackageID: &pkg.ID})
	require.NoError(t, err)

	err = svc.RemoveItem(ctx, "user2", item.ID)
	require.True(t, apperrors.IsNotFound(err))

	require.NoError(t, svc.RemoveItem(ctx, "user1", item.ID))

	items, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClearIsIdempotent(t *testing.T) {
	store, svc := newCartFixture()
	ctx := context.Background()
	pkg := store.addPackage(models.Package{Name: "p", Price: dec("10.00")})

	_, err := svc.AddItem(ctx, "user1", AddItemInput{PackageID: &pkg.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user1"))
	require.NoError(t, svc.Clear(ctx, "user1"), "clearing an empty cart must succeed")

	items, err := svc.List(ctx, "user1")
	require.NoError(t, err)
	require.Empty(t, items)
}
