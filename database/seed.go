package database

import (
	"log"

	"park_manager/constants"
	"park_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456jump"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456jump"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "Portao", Password: HashPassword, Active: true, Role: constants.ROLE_STAFF},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	// Pulseiras da vitrine
	products := []model.Product{
		{Name: "Pulseira 1 Hora", Description: "Perfeito para conhecer todas as atrações", Price: 49.90, Duration: "60 minutos", Active: true},
		{Name: "Pulseira 2 Horas", Description: "Diversão estendida para toda a família", Price: 79.90, Duration: "120 minutos", Active: true},
		{Name: "Pulseira Day Pass", Description: "Dia inteiro de pura adrenalina", Price: 129.90, Duration: "Dia inteiro", Active: true},
		{Name: "Pulseira VIP", Description: "Acesso premium com vantagens exclusivas", Price: 199.90, Duration: "Dia inteiro + extras", Active: true},
	}

	for _, product := range products {
		product.Slug = slug.Make(product.Name)
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed data for product:", product.Name, "error:", err)
		}
	}

	combos := []model.Combo{
		{
			Title:       "Combo Família",
			Description: "4 pulseiras de 1 hora com desconto",
			Price:       169.90,
			Active:      true,
			Items: []model.ComboItem{
				{Quantity: 4, Title: "Pulseira 1 Hora", Type: "wristband"},
			},
		},
		{
			Title:       "Combo Aniversário",
			Description: "2 pulseiras Day Pass + 2 pares de meias antiderrapantes",
			Price:       239.90,
			Active:      true,
			Items: []model.ComboItem{
				{Quantity: 2, Title: "Pulseira Day Pass", Type: "wristband"},
				{Quantity: 2, Title: "Meia Antiderrapante", Type: "product"},
			},
		},
	}

	for _, combo := range combos {
		combo.Slug = slug.Make(combo.Title)
		if err := db.Where(model.Combo{Slug: combo.Slug}).FirstOrCreate(&combo).Error; err != nil {
			log.Println("failed to seed data for combo:", combo.Title, "error:", err)
		}
	}
}
