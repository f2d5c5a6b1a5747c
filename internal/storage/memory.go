package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fotoprint/fotoprint/internal/models"
)

// MemoryStore is the volatile map-backed Store used when no database is
// configured. Order listings sort by creation time descending with an
// insertion sequence as tiebreak, matching the relational
// ORDER BY created_at DESC semantics.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[uuid.UUID]models.User
	photographers map[uuid.UUID]models.Photographer
	products      map[uuid.UUID]models.ProductType
	orders        map[uuid.UUID]models.Order
	orderPhotos   map[uuid.UUID]models.OrderPhoto
	refreshTokens map[uuid.UUID]models.RefreshToken

	orderSeq map[uuid.UUID]uint64
	nextSeq  uint64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uuid.UUID]models.User),
		photographers: make(map[uuid.UUID]models.Photographer),
		products:      make(map[uuid.UUID]models.ProductType),
		orders:        make(map[uuid.UUID]models.Order),
		orderPhotos:   make(map[uuid.UUID]models.OrderPhoto),
		refreshTokens: make(map[uuid.UUID]models.RefreshToken),
		orderSeq:      make(map[uuid.UUID]uint64),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) ListPhotographers(ctx context.Context) ([]models.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.Photographer, 0, len(s.photographers))
	for _, p := range s.photographers {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *MemoryStore) GetPhotographer(ctx context.Context, id uuid.UUID) (*models.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photographers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreatePhotographer(ctx context.Context, p *models.Photographer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Rating == 0 {
		p.Rating = 5
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.photographers[p.ID] = *p
	return nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.ProductType, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *MemoryStore) GetProductByName(ctx context.Context, name string) (*models.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p *models.ProductType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id uuid.UUID, upd ProductUpdate) (*models.ProductType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.DisplayName != nil {
		p.DisplayName = *upd.DisplayName
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.BasePrice != nil {
		p.BasePrice = *upd.BasePrice
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	s.products[id] = p
	return &p, nil
}

func (s *MemoryStore) sortedOrdersLocked(filter func(models.Order) bool) []models.Order {
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter == nil || filter(o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.orderSeq[a.ID] > s.orderSeq[b.ID]
	})
	return orders
}

func (s *MemoryStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedOrdersLocked(nil), nil
}

func (s *MemoryStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedOrdersLocked(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	s.nextSeq++
	s.orderSeq[order.ID] = s.nextSeq
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	s.orders[id] = order
	return &order, nil
}

func (s *MemoryStore) AddOrderPhoto(ctx context.Context, photo *models.OrderPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now().UTC()
	}
	s.orderPhotos[photo.ID] = *photo
	return nil
}

func (s *MemoryStore) ListOrderPhotos(ctx context.Context, orderID uuid.UUID) ([]models.OrderPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photos := make([]models.OrderPhoto, 0)
	for _, p := range s.orderPhotos {
		if p.OrderID == orderID {
			photos = append(photos, p)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].UploadedAt.Before(photos[j].UploadedAt) })
	return photos, nil
}

func (s *MemoryStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	s.refreshTokens[token.ID] = *token
	return nil
}

func (s *MemoryStore) GetRefreshToken(ctx context.Context, jti string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.refreshTokens {
		if t.JTI == jti {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) RevokeRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.refreshTokens {
		if t.Token == token {
			t.Revoked = true
			s.refreshTokens[id] = t
		}
	}
	return nil
}
