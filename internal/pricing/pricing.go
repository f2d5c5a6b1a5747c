package pricing

import (
	"fmt"

	"github.com/fotoprint/fotoprint/internal/catalog"
)

// Compute returns the price in whole rubles for a configured product.
// Pure and deterministic: the same configuration always prices the same.
func Compute(productType string, cfg catalog.Config) (int, error) {
	switch c := cfg.(type) {
	case catalog.PhotoalbumConfig:
		return photoalbumPrice(c), nil
	case catalog.PhotosConfig:
		return photosPrice(c), nil
	case catalog.CalendarConfig:
		return calendarPrice(c), nil
	default:
		return 0, fmt.Errorf("нет правил расчёта для типа %q", productType)
	}
}

func photoalbumPrice(c catalog.PhotoalbumConfig) int {
	price := 500
	switch c.Size {
	case "medium":
		price += 500
	case "large":
		price += 1000
	}
	switch c.CoverType {
	case "hard":
		price += 300
	case "premium":
		price += 800
	}
	price += c.Pages * 50
	if c.PaperType == "glossy" {
		price += 200
	}
	return price
}

func photosPrice(c catalog.PhotosConfig) int {
	// Size sets the per-unit price outright, it is not an increment.
	perPhoto := 10
	switch c.Size {
	case "15x20":
		perPhoto = 15
	case "20x30":
		perPhoto = 25
	}
	if c.PaperType == "glossy" {
		perPhoto += 3
	}
	if c.Border {
		perPhoto += 2
	}
	return perPhoto * c.Quantity
}

func calendarPrice(c catalog.CalendarConfig) int {
	price := 600
	if c.Type == "wall" {
		price += 200
	}
	if c.Size == "A3" {
		price += 300
	}
	if c.Months == 12 {
		price += 200
	}
	if c.Binding == "spiral" {
		price += 150
	}
	return price
}
