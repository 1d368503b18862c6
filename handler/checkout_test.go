package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"park_manager/constants"
	"park_manager/middleware"
	"park_manager/model"
	"park_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutApp() *fiber.App {
	app := fiber.New()
	app.Post("/checkout", middleware.CustomerProtected(), validate.Checkout(), Checkout)
	return app
}

func TestCheckoutPixReturnsQrCodeAndCreatesPendingOrder(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/payments":
			raw, _ := io.ReadAll(r.Body)
			var payload map[string]any
			assert.NoError(t, json.Unmarshal(raw, &payload))
			assert.Equal(t, "cus_000001", payload["customer"])
			assert.Equal(t, constants.PAYMENT_PIX, payload["billingType"])
			assert.Equal(t, 209.70, payload["value"])
			w.Write([]byte(`{"id":"pay_123","status":"PENDING","value":209.70,"dueDate":"2026-08-31"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/payments/pay_123/pixQrCode":
			w.Write([]byte(`{"encodedImage":"imagem-base64","payload":"copia-e-cola","expirationDate":"2026-08-31 23:59:59"}`))
		default:
			t.Errorf("chamada inesperada ao gateway: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer gateway.Close()
	t.Setenv("ASAAS_API_URL", gateway.URL)
	t.Setenv("ASAAS_API_KEY", "chave-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", true)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"paymentMethod":"PIX","totalValue":209.70,"cart":[{"id":"pulseira-60min","name":"Pulseira 60min","quantity":2,"price":79.90},{"id":"pulseira-30min","name":"Pulseira 30min","quantity":1,"price":49.90}]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "imagem-base64", body["qrCode"])
	assert.Equal(t, "copia-e-cola", body["payload"])
	assert.Equal(t, "2026-08-31", body["expirationDate"])
	assert.NotEmpty(t, body["orderCode"])

	var order model.Order
	require.NoError(t, db.Preload("Cart").Where("asaas_payment_id = ?", "pay_123").First(&order).Error)
	assert.Equal(t, constants.ORDER_PENDING, order.Status)
	assert.Equal(t, constants.PAYMENT_PIX, order.PaymentMethod)
	assert.Equal(t, 209.70, order.TotalValue)
	assert.Equal(t, body["orderCode"], order.PublicCode)
	require.Len(t, order.Cart, 2)
}

func TestCheckoutCreditCardDeclinedReturnsGatewayDetails(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"invalid_creditCard","description":"Cartão recusado pela operadora"}]}`))
	}))
	defer gateway.Close()
	t.Setenv("ASAAS_API_URL", gateway.URL)
	t.Setenv("ASAAS_API_KEY", "chave-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", true)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"paymentMethod":"CREDIT_CARD","totalValue":79.90,"cart":[{"id":"pulseira-60min","name":"Pulseira 60min","quantity":1,"price":79.90}],"creditCard":{"holderName":"MARIA DA SILVA","number":"5162306219378829","expiryMonth":"05","expiryYear":"2028","ccv":"318"}}`)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Falha ao processar pagamento com cartão.", body["error"])
	require.NotNil(t, body["details"])
	assert.Contains(t, respDetails(t, body), "Cartão recusado pela operadora")

	// Cobrança recusada não deixa pedido para trás
	var count int64
	db.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
}

func respDetails(t *testing.T, body map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(body["details"])
	require.NoError(t, err)
	return string(raw)
}

func TestCheckoutCreditCardRequiresCardData(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", true)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"paymentMethod":"CREDIT_CARD","totalValue":79.90,"cart":[{"id":"pulseira-60min","name":"Pulseira 60min","quantity":1,"price":79.90}]}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Dados do cartão de crédito são obrigatórios.", body["error"])
}

func TestCheckoutWithoutGatewayCustomerReturns404(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", false)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"paymentMethod":"PIX","totalValue":49.90,"cart":[{"id":"pulseira-30min","name":"Pulseira 30min","quantity":1,"price":49.90}]}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, constants.PROFILE_NOT_FOUND, body["error"])

	var count int64
	db.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutRejectsUnsupportedPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", true)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"paymentMethod":"BOLETO","totalValue":49.90,"cart":[{"id":"pulseira-30min","name":"Pulseira 30min","quantity":1,"price":49.90}]}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Método de pagamento não suportado.", body["error"])
}

func TestCheckoutRequiresPaymentMethodAndTotal(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	app := newCheckoutApp()
	customer := createTestCustomer(t, db, "cliente@example.com", true)

	resp := doJSON(t, app, "POST", "/checkout", customerBearer(t, customer),
		`{"cart":[{"id":"pulseira-30min","name":"Pulseira 30min","quantity":1,"price":49.90}]}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "Método de pagamento e valor total são obrigatórios.", body["error"])
}
