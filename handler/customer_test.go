package handler

import (
	"bytes"
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

func newCustomerApp() *fiber.App {
	app := fiber.New()
	app.Post("/auth/register", validate.RegisterCustomer(), RegisterCustomer)
	app.Post("/auth/login", CustomerLogin)
	app.Post("/user/profile", middleware.CustomerProtected(), validate.UpdateProfile(), UpdateProfile)
	app.Get("/user/me", middleware.CustomerProtected(), GetCurrentCustomer)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegisterCustomerCreatesAccountWithIncompleteProfile(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newCustomerApp()

	resp := doJSON(t, app, "POST", "/auth/register", "", `{"email":"novo@example.com","password":"123456jump"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "novo@example.com", body["email"])
	assert.NotEmpty(t, body["token"])

	var customer model.Customer
	require.NoError(t, db.Where("email = ?", "novo@example.com").First(&customer).Error)
	assert.False(t, customer.ProfileComplete)
	assert.Equal(t, constants.GATEWAY_PENDING, customer.GatewayStatus)
	assert.Nil(t, customer.AsaasCustomerId)
	assert.NotEqual(t, "123456jump", customer.Password)
}

func TestRegisterCustomerRejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	app := newCustomerApp()

	resp := doJSON(t, app, "POST", "/auth/register", "", `{"email":"novo@example.com","password":"123"}`)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, constants.WEAK_PASSWORD, body["error"])

	var count int64
	db.Model(&model.Customer{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterCustomerRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newCustomerApp()

	createTestCustomer(t, db, "ocupado@example.com", false)

	resp := doJSON(t, app, "POST", "/auth/register", "", `{"email":"ocupado@example.com","password":"123456jump"}`)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, constants.EMAIL_ALREADY_EXISTS, body["error"])
}

func TestRegisterCustomerRequiresEmailAndPassword(t *testing.T) {
	setupTestDB(t)
	app := newCustomerApp()

	resp := doJSON(t, app, "POST", "/auth/register", "", `{"email":"","password":""}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, constants.MISSING_LOGIN_INPUT, body["error"])
}

func TestCustomerLoginReturnsTokenPair(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newCustomerApp()

	createTestCustomer(t, db, "cliente@example.com", false)

	resp := doJSON(t, app, "POST", "/auth/login", "", `{"email":"cliente@example.com","password":"123456jump"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])
}

func TestUpdateProfileRequiresAllMandatoryFields(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newCustomerApp()

	customer := createTestCustomer(t, db, "cliente@example.com", false)

	// Sem o telefone, a validação aponta o campo e nada é gravado
	resp := doJSON(t, app, "POST", "/user/profile", customerBearer(t, customer),
		`{"fullName":"Maria da Silva","cpfCnpj":"12345678909","address":"Rua A","addressNumber":"1","province":"Centro","postalCode":"01001000"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "O campo phone é obrigatório.", body["error"])

	var reloaded model.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.False(t, reloaded.ProfileComplete)
	assert.Nil(t, reloaded.FullName)
}

func TestUpdateProfileRegistersGatewayCustomer(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "chave-teste", r.Header.Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cus_000123"}`))
	}))
	defer gateway.Close()
	t.Setenv("ASAAS_API_URL", gateway.URL)
	t.Setenv("ASAAS_API_KEY", "chave-teste")

	app := newCustomerApp()
	customer := createTestCustomer(t, db, "cliente@example.com", false)

	resp := doJSON(t, app, "POST", "/user/profile", customerBearer(t, customer),
		`{"fullName":"Maria da Silva","phone":"11999990000","cpfCnpj":"12345678909","address":"Rua A","addressNumber":"1","province":"Centro","postalCode":"01001000"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, "cus_000123", body["asaasCustomerId"])

	var reloaded model.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.True(t, reloaded.ProfileComplete)
	require.NotNil(t, reloaded.AsaasCustomerId)
	assert.Equal(t, "cus_000123", *reloaded.AsaasCustomerId)
	assert.Equal(t, constants.GATEWAY_LINKED, reloaded.GatewayStatus)
}

func TestUpdateProfileKeepsWorkingWhenGatewayFails(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"invalid_cpfCnpj","description":"CPF inválido"}]}`))
	}))
	defer gateway.Close()
	t.Setenv("ASAAS_API_URL", gateway.URL)
	t.Setenv("ASAAS_API_KEY", "chave-teste")

	app := newCustomerApp()
	customer := createTestCustomer(t, db, "cliente@example.com", false)

	resp := doJSON(t, app, "POST", "/user/profile", customerBearer(t, customer),
		`{"fullName":"Maria da Silva","phone":"11999990000","cpfCnpj":"000","address":"Rua A","addressNumber":"1","province":"Centro","postalCode":"01001000"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Nil(t, body["asaasCustomerId"])

	// Perfil gravado mesmo assim; o reconciliador tenta o gateway de novo
	var reloaded model.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.True(t, reloaded.ProfileComplete)
	assert.Nil(t, reloaded.AsaasCustomerId)
	assert.Equal(t, constants.GATEWAY_FAILED, reloaded.GatewayStatus)
}

func TestCustomerProtectedRejectsMissingAndInvalidTokens(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	app := newCustomerApp()

	resp := doJSON(t, app, "GET", "/user/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/user/me", "Token abc", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/user/me", "Bearer token-invalido", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
