package helper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(jwtSecret())
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(jwtSecret())
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})

	return token, err
}

// GetInfoCustomerFromToken resolve o cliente a partir do token já validado
// pelo middleware; devolve claim zerada quando o token não traz customerId.
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, *model.Customer) {
	u := c.Locals("user")
	if u == nil {
		return model.TokenClaim{}, nil
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		return model.TokenClaim{}, nil
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, nil
	}

	customerIdFloat, _ := claims["customerId"].(float64)
	if customerIdFloat == 0 {
		return model.TokenClaim{}, nil
	}
	username, _ := claims["username"].(string)

	tokenClaim := model.TokenClaim{
		CustomerId: uint(customerIdFloat),
		Username:   username,
	}

	var customer model.Customer
	if err := database.DB.First(&customer, tokenClaim.CustomerId).Error; err != nil {
		log.Printf("Cliente não encontrado (id=%d): %v", tokenClaim.CustomerId, err)
		return tokenClaim, nil
	}

	return tokenClaim, &customer
}

// GetInfoAccountFromToken devolve a claim da conta interna e os papéis.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool) {
	u, ok := c.Locals("user").(*jwt.Token)
	if !ok || u == nil {
		return model.TokenClaim{}, false, false
	}
	claims, ok := u.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false, false
	}

	accountIdFloat, _ := claims["accountId"].(float64)
	if accountIdFloat == 0 {
		return model.TokenClaim{}, false, false
	}
	username, _ := claims["username"].(string)

	var account model.Account
	if err := database.DB.First(&account, uint(accountIdFloat)).Error; err != nil {
		log.Printf("Conta não encontrada: id=%d err=%v", uint(accountIdFloat), err)
		return model.TokenClaim{}, false, false
	}

	info := model.TokenClaim{
		AccountId: account.ID,
		Username:  username,
	}
	return info, account.Role == constants.ROLE_ADMIN, account.Role == constants.ROLE_STAFF
}
