package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fotoprint/fotoprint/internal/models"
)

var ErrNotFound = errors.New("not found")

// ProductUpdate carries the admin-editable catalog fields; nil means
// "leave unchanged". The product name itself is never updated.
type ProductUpdate struct {
	DisplayName *string
	Description *string
	BasePrice   *int
	Image       *string
}

// Store is the persistence contract shared by the relational and the
// in-memory backends. List operations over orders return newest first.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	ListPhotographers(ctx context.Context) ([]models.Photographer, error)
	GetPhotographer(ctx context.Context, id uuid.UUID) (*models.Photographer, error)
	CreatePhotographer(ctx context.Context, p *models.Photographer) error

	ListProducts(ctx context.Context) ([]models.ProductType, error)
	GetProductByName(ctx context.Context, name string) (*models.ProductType, error)
	CreateProduct(ctx context.Context, p *models.ProductType) error
	UpdateProduct(ctx context.Context, id uuid.UUID, upd ProductUpdate) (*models.ProductType, error)

	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)

	AddOrderPhoto(ctx context.Context, photo *models.OrderPhoto) error
	ListOrderPhotos(ctx context.Context, orderID uuid.UUID) ([]models.OrderPhoto, error)

	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, jti string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
