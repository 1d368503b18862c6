package model

import "time"

type Order struct {
	DTO
	PublicCode string   `gorm:"unique;size:20" json:"publicCode"`
	CustomerId uint     `gorm:"not null" json:"customerId"`
	Customer   Customer `gorm:"foreignKey:CustomerId" json:"-"`

	TotalValue    float64 `gorm:"not null" json:"totalValue"`
	Status        string  `gorm:"default:PENDING" json:"status"` // PENDING, CONFIRMED, EXPIRED
	PaymentMethod string  `json:"paymentMethod"`                 // PIX, CREDIT_CARD

	// Identificação da cobrança no gateway; o webhook localiza o pedido
	// por asaas_payment_id.
	AsaasPaymentId string `gorm:"index" json:"asaasPaymentId"`
	AsaasStatus    string `json:"asaasStatus"`

	Cart    []OrderItem `gorm:"foreignKey:OrderId" json:"cart"`
	Tickets []Ticket    `gorm:"foreignKey:OrderId" json:"tickets,omitempty"`

	PaidAt *time.Time `json:"paidAt,omitempty"`
}

// OrderItem é a linha do carrinho declarada no checkout.
type OrderItem struct {
	DTO
	OrderId     uint    `gorm:"not null" json:"orderId"`
	ItemId      string  `gorm:"not null" json:"itemId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type CartItemInput struct {
	Id          string  `validate:"required" json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `validate:"required,gt=0" json:"quantity"`
	Price       float64 `json:"price"`
}

type CreditCardInput struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	Ccv         string `json:"ccv"`
}

type CheckoutInput struct {
	PaymentMethod string           `validate:"required" json:"paymentMethod"`
	TotalValue    float64          `validate:"required,gt=0" json:"totalValue"`
	Cart          []CartItemInput  `validate:"required,min=1,dive" json:"cart"`
	CreditCard    *CreditCardInput `json:"creditCard"`
}
