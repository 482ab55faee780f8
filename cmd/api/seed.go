package main

import (
	"errors"
	"os"

	"app/internal/domain/model"
	auth "app/internal/usecase/auth_usecase"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type seedProduct struct {
	Title       string
	ProductType string
	Animal      string
	Price       int64
	HerderName  string
	HerderEmail string
	Image       string
	Category    model.ProductCategory
}

// 初期カタログ。タイトルをキーに冪等で投入する。
var seedProducts = []seedProduct{
	{
		Title:       "Үхрийн цул мах - 1-р зэрэглэл",
		ProductType: "Үхрийн цул мах",
		Animal:      "Үхэр",
		Price:       18000,
		HerderName:  "Малчин Бат",
		HerderEmail: "bat@seed.local",
		Image:       "/beef-meat.png",
		Category:    model.CategoryMeat,
	},
	{
		Title:       "Шинэ өрөм (1кг)",
		ProductType: "Өрөм",
		Animal:      "Үнээ",
		Price:       35000,
		HerderName:  "Малчин Туяа",
		HerderEmail: "tuya@seed.local",
		Image:       "/orom.jpg",
		Category:    model.CategoryDairy,
	},
	{
		Title:       "Хонины гуяны мах",
		ProductType: "Хонины мах",
		Animal:      "Хонь",
		Price:       14500,
		HerderName:  "Малчин Дорж",
		HerderEmail: "dorj@seed.local",
		Image:       "/khoniny-makh.jpg",
		Category:    model.CategoryMeat,
	},
	{
		Title:       "Ямааны ноолуур (Цагаан)",
		ProductType: "Ноолуур",
		Animal:      "Ямаа",
		Price:       120000,
		HerderName:  "Малчин Болд",
		HerderEmail: "bold@seed.local",
		Image:       "/cashmere.jpg",
		Category:    model.CategoryHides,
	},
	{
		Title:       "Ааруул (Чихэртэй)",
		ProductType: "Ааруул",
		Animal:      "Үнээ",
		Price:       25000,
		HerderName:  "Малчин Цэцэг",
		HerderEmail: "tsetseg@seed.local",
		Image:       "/aaruul.jpg",
		Category:    model.CategoryDairy,
	},
	{
		Title:       "Айраг (Булган)",
		ProductType: "Айраг",
		Animal:      "Гүү",
		Price:       8000,
		HerderName:  "Малчин Ганзориг",
		HerderEmail: "ganzorig@seed.local",
		Image:       "/airag.jpg",
		Category:    model.CategoryDairy,
	},
}

// seedは管理者と初期カタログを投入する。何度起動しても増えない。
func seed(db *gorm.DB, hasher *auth.BcryptPasswordHasher, log zerolog.Logger) error {
	//管理者
	adminEmail := envOr("ADMIN_EMAIL", "admin@market.local")
	adminPassword := envOr("ADMIN_PASSWORD", "admin12345")
	if _, err := ensureUser(db, hasher, adminEmail, adminPassword, "Админ", model.RoleAdmin); err != nil {
		return err
	}

	//シード牧夫と商品
	for _, sp := range seedProducts {
		herder, err := ensureUser(db, hasher, sp.HerderEmail, envOr("SEED_HERDER_PASSWORD", "herder12345"), sp.HerderName, model.RoleHerder)
		if err != nil {
			return err
		}

		var existing model.Product
		err = db.Where("title = ?", sp.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		p := model.Product{
			HerderID:    herder.ID,
			HerderName:  herder.FullName,
			HerderEmail: herder.Email,
			Title:       sp.Title,
			ProductType: sp.ProductType,
			Animal:      sp.Animal,
			Category:    sp.Category,
			Price:       sp.Price,
			Desc:        sp.Title,
			Image:       sp.Image,
			Status:      model.ProductStatusApproved,
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		log.Info().Str("title", sp.Title).Msg("seeded product")
	}

	return nil
}

func ensureUser(db *gorm.DB, hasher *auth.BcryptPasswordHasher, email string, password string, fullName string, role model.Role) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user = model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func envOr(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
