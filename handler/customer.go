package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/model"
	"park_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/jordan-wright/email"
)

// RegisterCustomer cria a conta com perfil incompleto e devolve o token.
func RegisterCustomer(c *fiber.Ctx) error {
	db := database.DB

	customerInput, ok := c.Locals("RegisterCustomer").(model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if len(customerInput.Password) < 6 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": constants.WEAK_PASSWORD,
		})
	}

	isCheckEmailCustomer, err := helper.CheckByEmailCustomer(customerInput.Email, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if isCheckEmailCustomer {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": constants.EMAIL_ALREADY_EXISTS,
		})
	}

	hash, err := helper.HashPassword(customerInput.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	newCustomer := new(model.Customer)
	copier.Copy(&newCustomer, &customerInput)
	newCustomer.Password = hash
	newCustomer.ProfileComplete = false
	newCustomer.GatewayStatus = constants.GATEWAY_PENDING
	newCustomer.IsActive = true

	if err := db.Create(&newCustomer).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": constants.EMAIL_ALREADY_EXISTS,
			})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	tokenClaim := model.TokenClaim{
		CustomerId: newCustomer.ID,
		Username:   newCustomer.Email,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"uid":   newCustomer.ID,
		"email": newCustomer.Email,
		"token": token,
	})
}

func CustomerLogin(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	loginRequest := new(LoginRequest)

	if err := c.BodyParser(loginRequest); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if loginRequest.Email == "" || loginRequest.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	customerModel, err := helper.GetCustomerByEmail(loginRequest.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customerModel == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_EMAIL, errors.New("customer not exists"))
	}

	if !helper.CheckPasswordHash(loginRequest.Password, customerModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match email"))
	}

	if !customerModel.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		CustomerId: customerModel.ID,
		Username:   customerModel.Email,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tokenData := model.TokenData{
		AccessToken:  token,
		RefreshToken: refreshToken,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tokenData)
}

// UpdateProfile grava o perfil e tenta cadastrar o cliente de cobrança no
// Asaas; falha do gateway não derruba a requisição — o reconciliador
// tenta de novo depois.
func UpdateProfile(c *fiber.Ctx) error {
	db := database.DB

	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": constants.INVALID_TOKEN,
		})
	}

	input, ok := c.Locals("UpdateProfile").(model.UpdateProfileInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	updates := map[string]any{
		"full_name":        input.FullName,
		"phone":            input.Phone,
		"birth_date":       utils.StringPtr(input.BirthDate),
		"cpf_cnpj":         input.CpfCnpj,
		"address":          input.Address,
		"address_number":   input.AddressNumber,
		"complement":       utils.StringPtr(input.Complement),
		"province":         input.Province,
		"postal_code":      input.PostalCode,
		"profile_complete": true,
	}
	if err := db.Model(customer).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	// Cadastro no gateway é best-effort
	var asaasCustomerId *string
	asaas := helper.NewAsaas()
	asaasId, err := asaas.CreateCustomer(helper.BuildAsaasCustomerPayload(customer))
	if err != nil {
		log.Printf("Erro ao criar cliente no Asaas: %v", err)
		db.Model(customer).Update("gateway_status", constants.GATEWAY_FAILED)
	} else {
		asaasCustomerId = &asaasId
		if err := db.Model(customer).Updates(map[string]any{
			"asaas_customer_id": asaasId,
			"gateway_status":    constants.GATEWAY_LINKED,
		}).Error; err != nil {
			log.Printf("Erro ao salvar asaasCustomerId: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message":         "Perfil atualizado com sucesso!",
		"asaasCustomerId": asaasCustomerId,
	})
}

func GetCurrentCustomer(c *fiber.Ctx) error {
	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": constants.INVALID_TOKEN,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB
	EmailInput, ok := c.Locals("EmailForgotPassword").(model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var customer model.Customer
	if err := db.Where("email = ?", EmailInput.Email).First(&customer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cliente não encontrado"})
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Não foi possível gerar o token"})
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Não foi possível salvar o token"})
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("APP_URL"), token)
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{EmailInput.Email}
	e.Subject = "Recuperação de senha"
	e.Text = []byte(fmt.Sprintf("Clique no link para redefinir sua senha: %s", resetLink))
	err := e.Send(os.Getenv("SMTP_HOST")+":"+os.Getenv("SMTP_PORT"),
		smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Não foi possível enviar o e-mail"})
	}

	return c.JSON(fiber.Map{"message": "Link de recuperação enviado para o e-mail"})
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB
	ResetPassword, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", ResetPassword.Token, time.Now()).First(&resetToken).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token inválido ou expirado"})
	}

	var customer model.Customer
	if err := db.First(&customer, resetToken.CustomerId).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cliente não encontrado"})
	}

	hash, err := helper.HashPassword(ResetPassword.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.Delete(&resetToken)

	return c.JSON(fiber.Map{"message": "Senha redefinida com sucesso"})
}
