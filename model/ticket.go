package model

import "time"

// Ticket é uma unidade de acesso resgatável no portão; um por unidade
// comprada, gerado pelo webhook após a confirmação do pagamento.
type Ticket struct {
	DTO
	OrderId    uint `gorm:"not null" json:"orderId"`
	CustomerId uint `gorm:"not null" json:"customerId"`

	ProductId       string `gorm:"not null" json:"productId"`
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription"`

	Code string `gorm:"size:20;uniqueIndex" json:"code"`

	Validated   bool       `gorm:"default:false" json:"validated"`
	ValidatedAt *time.Time `json:"validatedAt"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expiresAt"`

	Order    Order    `gorm:"foreignKey:OrderId" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerId" json:"-"`
}

type Tickets []Ticket
