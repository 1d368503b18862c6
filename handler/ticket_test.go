package handler

import (
	"testing"
	"time"

	"park_manager/constants"
	"park_manager/helper"
	"park_manager/middleware"
	"park_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTicketApp() *fiber.App {
	app := fiber.New()
	app.Post("/ticket/validate/:code", middleware.Protected(), ValidateTicket)
	return app
}

func createStaffAccount(t *testing.T, db *gorm.DB) *model.Account {
	t.Helper()
	hash, err := helper.HashPassword("123456jump")
	require.NoError(t, err)

	account := &model.Account{
		Username: "Portao",
		Password: hash,
		Role:     constants.ROLE_STAFF,
		Active:   true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createRedeemableTicket(t *testing.T, db *gorm.DB, customer *model.Customer, code string, expiresAt time.Time) *model.Ticket {
	t.Helper()
	order := createPendingOrder(t, db, customer, "pay_"+code)
	ticket := &model.Ticket{
		OrderId:    order.ID,
		CustomerId: customer.ID,
		ProductId:  "pulseira-60min",
		ItemName:   "Pulseira 60min",
		Code:       code,
		ExpiresAt:  expiresAt,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func TestValidateTicketMarksAsUsed(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newTicketApp()

	staff := createStaffAccount(t, db)
	customer := createTestCustomer(t, db, "cliente@example.com", true)
	createRedeemableTicket(t, db, customer, "PULS-AAAA1111", time.Now().Add(12*time.Hour))

	resp := doJSON(t, app, "POST", "/ticket/validate/PULS-AAAA1111", accountBearer(t, staff), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded model.Ticket
	require.NoError(t, db.Where("code = ?", "PULS-AAAA1111").First(&reloaded).Error)
	assert.True(t, reloaded.Validated)
	assert.NotNil(t, reloaded.ValidatedAt)
}

func TestValidateTicketRejectsSecondRedemption(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newTicketApp()

	staff := createStaffAccount(t, db)
	customer := createTestCustomer(t, db, "cliente@example.com", true)
	createRedeemableTicket(t, db, customer, "PULS-BBBB2222", time.Now().Add(12*time.Hour))

	resp := doJSON(t, app, "POST", "/ticket/validate/PULS-BBBB2222", accountBearer(t, staff), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/ticket/validate/PULS-BBBB2222", accountBearer(t, staff), "")
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Ingresso já utilizado", body["error"])
}

func TestValidateTicketRejectsExpiredTicket(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newTicketApp()

	staff := createStaffAccount(t, db)
	customer := createTestCustomer(t, db, "cliente@example.com", true)
	createRedeemableTicket(t, db, customer, "PULS-CCCC3333", time.Now().Add(-1*time.Hour))

	resp := doJSON(t, app, "POST", "/ticket/validate/PULS-CCCC3333", accountBearer(t, staff), "")
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Ingresso expirado", body["error"])

	var reloaded model.Ticket
	require.NoError(t, db.Where("code = ?", "PULS-CCCC3333").First(&reloaded).Error)
	assert.False(t, reloaded.Validated)
}

func TestValidateTicketUnknownCodeReturns404(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newTicketApp()

	staff := createStaffAccount(t, db)

	resp := doJSON(t, app, "POST", "/ticket/validate/PULS-ZZZZ9999", accountBearer(t, staff), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
