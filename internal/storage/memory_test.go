package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fotoprint/fotoprint/internal/models"
)

func newTestOrder(userID uuid.UUID, createdAt time.Time) *models.Order {
	return &models.Order{
		UserID:        userID,
		ProductType:   "calendar",
		TotalPrice:    600,
		ProductConfig: datatypes.JSON(`{"type":"desk","size":"A4","months":6,"binding":"glued"}`),
		PhotoSource:   models.PhotoSourceUpload,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestMemoryStoreOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	userID := uuid.New()

	base := time.Now().UTC()
	oldest := newTestOrder(userID, base.Add(-2*time.Hour))
	middle := newTestOrder(userID, base.Add(-time.Hour))
	newest := newTestOrder(userID, base)

	require.NoError(t, s.CreateOrder(ctx, middle))
	require.NoError(t, s.CreateOrder(ctx, oldest))
	require.NoError(t, s.CreateOrder(ctx, newest))

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, newest.ID, orders[0].ID)
	require.Equal(t, middle.ID, orders[1].ID)
	require.Equal(t, oldest.ID, orders[2].ID)
}

func TestMemoryStoreOrdersSameTimestampInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	userID := uuid.New()
	at := time.Now().UTC()

	first := newTestOrder(userID, at)
	second := newTestOrder(userID, at)
	require.NoError(t, s.CreateOrder(ctx, first))
	require.NoError(t, s.CreateOrder(ctx, second))

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
}

func TestMemoryStoreOwnershipFilterIsExact(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	alice := uuid.New()
	bob := uuid.New()

	now := time.Now().UTC()
	require.NoError(t, s.CreateOrder(ctx, newTestOrder(alice, now)))
	require.NoError(t, s.CreateOrder(ctx, newTestOrder(bob, now)))
	require.NoError(t, s.CreateOrder(ctx, newTestOrder(alice, now.Add(time.Minute))))

	orders, err := s.ListOrdersByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		require.Equal(t, alice, o.UserID)
	}
}

func TestMemoryStoreUpdateOrderStatusIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	order := newTestOrder(uuid.New(), time.Now().UTC().Add(-time.Minute))
	require.NoError(t, s.CreateOrder(ctx, order))
	require.Equal(t, models.StatusPending, order.Status)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, models.StatusProcessing, updated.Status)
	firstUpdatedAt := updated.UpdatedAt

	time.Sleep(time.Millisecond)
	again, err := s.UpdateOrderStatus(ctx, order.ID, models.StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, models.StatusProcessing, again.Status)
	require.True(t, again.UpdatedAt.After(firstUpdatedAt))

	stored, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusProcessing, stored.Status)
}

func TestMemoryStoreUpdateOrderStatusNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.UpdateOrderStatus(context.Background(), uuid.New(), models.StatusReady)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOrderPhotos(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	order := newTestOrder(uuid.New(), time.Now().UTC())
	require.NoError(t, s.CreateOrder(ctx, order))

	photos, err := s.ListOrderPhotos(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, photos)
	require.Empty(t, photos)

	require.NoError(t, s.AddOrderPhoto(ctx, &models.OrderPhoto{OrderID: order.ID, PhotoPath: "/photos/a.jpg"}))
	require.NoError(t, s.AddOrderPhoto(ctx, &models.OrderPhoto{OrderID: order.ID, PhotoPath: "/photos/b.jpg"}))
	require.NoError(t, s.AddOrderPhoto(ctx, &models.OrderPhoto{OrderID: uuid.New(), PhotoPath: "/photos/other.jpg"}))

	photos, err = s.ListOrderPhotos(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
}

func TestMemoryStoreProductUpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &models.ProductType{Name: "calendar", DisplayName: "Календарь", Description: "desc", BasePrice: 600, Image: "/img/calendar.png"}
	require.NoError(t, s.CreateProduct(ctx, p))

	newPrice := 700
	updated, err := s.UpdateProduct(ctx, p.ID, ProductUpdate{BasePrice: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 700, updated.BasePrice)
	require.Equal(t, "Календарь", updated.DisplayName)
	require.Equal(t, "calendar", updated.Name)
}

func TestMemoryStoreUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "admin", PasswordHash: "x", IsAdmin: true}))

	user, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, user.IsAdmin)
	require.NotEqual(t, uuid.Nil, user.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tok := &models.RefreshToken{Token: "raw-token", JTI: "jti-1", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour).Unix()}
	require.NoError(t, s.CreateRefreshToken(ctx, tok))

	got, err := s.GetRefreshToken(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, got.Revoked)

	require.NoError(t, s.RevokeRefreshToken(ctx, "raw-token"))
	got, err = s.GetRefreshToken(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, got.Revoked)
}
