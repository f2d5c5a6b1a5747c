package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusDelivered  = "delivered"
)

const (
	PhotoSourceUpload       = "upload"
	PhotoSourcePhotographer = "photographer"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"is_admin"`
	CreatedAt    time.Time `gorm:"not null"                 json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Photographer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Name           string    `gorm:"not null"               json:"name"`
	Photo          string    `gorm:"not null"               json:"photo"`
	Specialization string    `gorm:"not null"               json:"specialization"`
	PricePerHour   int       `gorm:"not null"               json:"price_per_hour"`
	Rating         int       `gorm:"not null;default:5"     json:"rating"`
	CreatedAt      time.Time `gorm:"not null"               json:"created_at"`
}

func (p *Photographer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name        string    `gorm:"unique;not null"           json:"name"`
	DisplayName string    `gorm:"not null"                  json:"display_name"`
	Description string    `gorm:"not null"                  json:"description"`
	BasePrice   int       `gorm:"not null"                  json:"base_price"`
	Image       string    `gorm:"not null"                  json:"image"`
	CreatedAt   time.Time `gorm:"not null"                  json:"created_at"`
}

func (p *ProductType) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null"       json:"user_id"`
	ProductType   string         `gorm:"not null"                       json:"product_type"`
	Status        string         `gorm:"not null;default:pending"       json:"status"`
	TotalPrice    int            `gorm:"not null"                       json:"total_price"`
	ProductConfig datatypes.JSON `gorm:"not null"                       json:"product_config"`
	PhotoSource   string         `gorm:"not null"                       json:"photo_source"`

	PhotographerID       *uuid.UUID     `gorm:"type:uuid"  json:"photographer_id,omitempty"`
	ShootingDate         *time.Time     `json:"shooting_date,omitempty"`
	ShootingTime         string         `json:"shooting_time,omitempty"`
	ShootingLocation     string         `json:"shooting_location,omitempty"`
	ShootingCoordinates  datatypes.JSON `json:"shooting_coordinates,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null"       json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	Order      Order     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PhotoPath  string    `gorm:"not null"                 json:"photo_path"`
	UploadedAt time.Time `gorm:"not null"                 json:"uploaded_at"`
}

func (p *OrderPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Token     string    `gorm:"unique;not null"       json:"token"`
	JTI       string    `gorm:"uniqueIndex;not null"  json:"jti"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `gorm:"default:false"         json:"revoked"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
