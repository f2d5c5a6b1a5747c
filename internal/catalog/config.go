package catalog

import (
	"encoding/json"
	"fmt"
)

const (
	TypePhotoalbum = "photoalbum"
	TypePhotos     = "photos"
	TypePrints     = "prints"
	TypeCalendar   = "calendar"
)

// ValidProductType reports whether name belongs to the closed catalog set.
// "prints" is an alias of "photos" and shares its configuration variant.
func ValidProductType(name string) bool {
	switch name {
	case TypePhotoalbum, TypePhotos, TypePrints, TypeCalendar:
		return true
	}
	return false
}

type Config interface {
	Validate() error
}

type PhotoalbumConfig struct {
	Size      string `json:"size"`
	CoverType string `json:"coverType"`
	Pages     int    `json:"pages"`
	PaperType string `json:"paperType"`
}

func (c PhotoalbumConfig) Validate() error {
	switch c.Size {
	case "small", "medium", "large":
	default:
		return fmt.Errorf("недопустимый размер альбома: %q", c.Size)
	}
	switch c.CoverType {
	case "soft", "hard", "premium":
	default:
		return fmt.Errorf("недопустимый тип обложки: %q", c.CoverType)
	}
	if c.Pages <= 0 {
		return fmt.Errorf("число страниц должно быть положительным")
	}
	switch c.PaperType {
	case "matte", "glossy":
	default:
		return fmt.Errorf("недопустимый тип бумаги: %q", c.PaperType)
	}
	return nil
}

type PhotosConfig struct {
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	PaperType string `json:"paperType"`
	Border    bool   `json:"border"`
}

func (c PhotosConfig) Validate() error {
	switch c.Size {
	case "10x15", "15x20", "20x30":
	default:
		return fmt.Errorf("недопустимый формат фото: %q", c.Size)
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("количество должно быть положительным")
	}
	switch c.PaperType {
	case "matte", "glossy":
	default:
		return fmt.Errorf("недопустимый тип бумаги: %q", c.PaperType)
	}
	return nil
}

type CalendarConfig struct {
	Type    string `json:"type"`
	Size    string `json:"size"`
	Months  int    `json:"months"`
	Binding string `json:"binding"`
}

func (c CalendarConfig) Validate() error {
	switch c.Type {
	case "wall", "desk":
	default:
		return fmt.Errorf("недопустимый тип календаря: %q", c.Type)
	}
	switch c.Size {
	case "A4", "A3":
	default:
		return fmt.Errorf("недопустимый формат календаря: %q", c.Size)
	}
	if c.Months != 6 && c.Months != 12 {
		return fmt.Errorf("календарь может быть на 6 или 12 месяцев")
	}
	switch c.Binding {
	case "spiral", "glued":
	default:
		return fmt.Errorf("недопустимый переплёт: %q", c.Binding)
	}
	return nil
}

// ParseConfig decodes the configuration variant for the given product type
// and validates it against the catalog option sets.
func ParseConfig(productType string, raw json.RawMessage) (Config, error) {
	var cfg Config
	switch productType {
	case TypePhotoalbum:
		var c PhotoalbumConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("конфигурация альбома: %w", err)
		}
		cfg = c
	case TypePhotos, TypePrints:
		var c PhotosConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("конфигурация фотопечати: %w", err)
		}
		cfg = c
	case TypeCalendar:
		var c CalendarConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("конфигурация календаря: %w", err)
		}
		cfg = c
	default:
		return nil, fmt.Errorf("неизвестный тип продукта: %q", productType)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
