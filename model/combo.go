package model

type Combo struct {
	DTO
	Title       string      `gorm:"not null" json:"title"`
	Slug        string      `gorm:"unique;size:120" json:"slug"`
	Description string      `json:"description"`
	Price       float64     `gorm:"not null" json:"price"`
	Active      bool        `gorm:"default:true" json:"active"`
	Items       []ComboItem `gorm:"foreignKey:ComboId" json:"items"`
}

// ComboItem é uma linha do combo (ex.: 2x Pulseira 1 Hora + 1x Meia).
type ComboItem struct {
	DTO
	ComboId  uint   `gorm:"not null" json:"comboId"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Title    string `gorm:"not null" json:"title"`
	Type     string `gorm:"not null" json:"type"` // wristband | product
}

type CreateComboInput struct {
	Title       string                 `validate:"required" json:"title"`
	Description string                 `json:"description"`
	Price       float64                `validate:"required,gt=0" json:"price"`
	Items       []CreateComboItemInput `validate:"required,min=1,dive" json:"items"`
}

type CreateComboItemInput struct {
	Quantity int    `validate:"required,gt=0" json:"quantity"`
	Title    string `validate:"required" json:"title"`
	Type     string `validate:"required,oneof=wristband product" json:"type"`
}
