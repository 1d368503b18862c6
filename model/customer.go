package model

import "time"

type Customer struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FullName      *string `json:"fullName"`
	Phone         *string `json:"phone"`
	BirthDate     *string `json:"birthDate"`
	CpfCnpj       *string `json:"cpfCnpj"`
	Address       *string `json:"address"`
	AddressNumber *string `json:"addressNumber"`
	Complement    *string `json:"complement"`
	Province      *string `json:"province"`
	PostalCode    *string `json:"postalCode"`

	ProfileComplete bool `gorm:"default:false" json:"profileComplete"`

	// Vínculo com o cliente de cobrança no Asaas. GatewayStatus fica
	// "pending" até o cadastro no gateway ser aceito; o reconciliador
	// reprocessa "pending"/"failed".
	AsaasCustomerId *string `gorm:"index" json:"asaasCustomerId"`
	GatewayStatus   string  `gorm:"default:pending" json:"gatewayStatus"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=6" json:"password"`
}

type UpdateProfileInput struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	BirthDate     string `json:"birthDate"`
	CpfCnpj       string `json:"cpfCnpj"`
	Address       string `json:"address"`
	AddressNumber string `json:"addressNumber"`
	Complement    string `json:"complement"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null" json:"customerId"`
	Token      string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
	Customer   Customer  `gorm:"foreignKey:CustomerId" json:"-"`
}
