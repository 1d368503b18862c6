package model

// Account é a conta interna (admin / funcionário do portão).
type Account struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}
