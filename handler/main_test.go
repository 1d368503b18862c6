package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/model"
	"park_manager/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB troca o banco global por um sqlite temporário.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	database.Migrate(db)

	old := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = old })

	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB, email string, linked bool) *model.Customer {
	t.Helper()

	hash, err := helper.HashPassword("123456jump")
	require.NoError(t, err)

	customer := &model.Customer{
		Email:         email,
		Password:      hash,
		GatewayStatus: constants.GATEWAY_PENDING,
		IsActive:      true,
	}
	if linked {
		customer.FullName = utils.Ptr("Maria da Silva")
		customer.Phone = utils.Ptr("11999990000")
		customer.CpfCnpj = utils.Ptr("12345678909")
		customer.Address = utils.Ptr("Rua dos Pinheiros")
		customer.AddressNumber = utils.Ptr("100")
		customer.Province = utils.Ptr("Pinheiros")
		customer.PostalCode = utils.Ptr("05422000")
		customer.ProfileComplete = true
		customer.AsaasCustomerId = utils.Ptr("cus_000001")
		customer.GatewayStatus = constants.GATEWAY_LINKED
	}
	require.NoError(t, db.Create(customer).Error)

	return customer
}

func customerBearer(t *testing.T, customer *model.Customer) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		CustomerId: customer.ID,
		Username:   customer.Email,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func accountBearer(t *testing.T, account *model.Account) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func parseBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
