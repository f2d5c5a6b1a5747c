package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fotoprint/fotoprint/internal/hash"
	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/storage"
)

// Run seeds the admin account, the photographer roster and the catalog.
// Safe to call on every startup: existing records are left untouched.
func Run(ctx context.Context, store storage.Store) error {
	l := logging.FromContext(ctx).With("component", "seed")

	if _, err := store.GetUserByUsername(ctx, "admin"); errors.Is(err, storage.ErrNotFound) {
		pwHash, err := hash.HashPassword("admin123")
		if err != nil {
			return fmt.Errorf("хеширование пароля администратора: %w", err)
		}
		admin := models.User{
			Username:     "admin",
			PasswordHash: pwHash,
			IsAdmin:      true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.CreateUser(ctx, &admin); err != nil {
			return fmt.Errorf("создание администратора: %w", err)
		}
		l.Info("admin user created", "username", "admin")
	} else if err != nil {
		return err
	}

	photographers, err := store.ListPhotographers(ctx)
	if err != nil {
		return err
	}
	if len(photographers) == 0 {
		roster := []models.Photographer{
			{
				Name:           "Алексей Петров",
				Photo:          "/images/photographers/alexey.png",
				Specialization: "Свадебная и семейная фотография",
				PricePerHour:   3000,
				Rating:         5,
			},
			{
				Name:           "Мария Иванова",
				Photo:          "/images/photographers/maria.png",
				Specialization: "Портретная и студийная съемка",
				PricePerHour:   2500,
				Rating:         5,
			},
			{
				Name:           "Дмитрий Соколов",
				Photo:          "/images/photographers/dmitriy.png",
				Specialization: "Репортажная и событийная фотография",
				PricePerHour:   2000,
				Rating:         4,
			},
		}
		for i := range roster {
			if err := store.CreatePhotographer(ctx, &roster[i]); err != nil {
				return fmt.Errorf("создание фотографа: %w", err)
			}
		}
		l.Info("photographers created", "count", len(roster))
	}

	catalogEntries := []models.ProductType{
		{
			Name:        "photoalbum",
			DisplayName: "Фотоальбом",
			Description: "Фотоальбом с индивидуальным дизайном обложки и страниц",
			BasePrice:   500,
			Image:       "/images/products/photoalbum.png",
		},
		{
			Name:        "photos",
			DisplayName: "Печать фотографий",
			Description: "Печать фотографий разных форматов на выбранной бумаге",
			BasePrice:   10,
			Image:       "/images/products/photos.png",
		},
		{
			Name:        "calendar",
			DisplayName: "Календарь",
			Description: "Настенный или настольный календарь с вашими фотографиями",
			BasePrice:   600,
			Image:       "/images/products/calendar.png",
		},
	}
	for i := range catalogEntries {
		if _, err := store.GetProductByName(ctx, catalogEntries[i].Name); errors.Is(err, storage.ErrNotFound) {
			if err := store.CreateProduct(ctx, &catalogEntries[i]); err != nil {
				return fmt.Errorf("создание продукта %s: %w", catalogEntries[i].Name, err)
			}
			l.Info("product created", "name", catalogEntries[i].Name)
		} else if err != nil {
			return err
		}
	}

	return nil
}
