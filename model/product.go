package model

// Product é uma pulseira de acesso vendida na vitrine.
type Product struct {
	DTO
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"unique;size:120" json:"slug"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Duration    string  `json:"duration"`
	ImageUrl    *string `json:"imageUrl"`
	Active      bool    `gorm:"default:true" json:"active"`
}

type Products []Product

type CreateProductInput struct {
	Name        string  `validate:"required" json:"name"`
	Description string  `json:"description"`
	Price       float64 `validate:"required,gt=0" json:"price"`
	Duration    string  `json:"duration"`
}

type EditProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `validate:"omitempty,gt=0" json:"price"`
	Duration    *string  `json:"duration"`
	Active      *bool    `json:"active"`
}
