package helper

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"park_manager/model"

	"github.com/joho/godotenv"
)

// Asaas Service
type Asaas struct {
	Config model.AsaasConfig
	Client *http.Client
}

func NewAsaas() *Asaas {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Arquivo .env não encontrado, usando variáveis de ambiente do sistema...")
	}
	return &Asaas{
		Config: model.AsaasConfig{
			BaseURL:      os.Getenv("ASAAS_API_URL"),
			APIKey:       os.Getenv("ASAAS_API_KEY"),
			WebhookToken: os.Getenv("ASAAS_WEBHOOK_TOKEN"),
		},
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *Asaas) doRequest(method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.Config.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("access_token", a.Config.APIKey)

	return a.Client.Do(req)
}

func decodeAsaasError(resp *http.Response) *model.AsaasErrorResponse {
	var asaasErr model.AsaasErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&asaasErr); err != nil {
		return &model.AsaasErrorResponse{Errors: []model.AsaasError{{Code: "unknown", Description: "resposta de erro ilegível do gateway"}}}
	}
	return &asaasErr
}

// CreateCustomer cadastra o cliente de cobrança e devolve o id do gateway.
func (a *Asaas) CreateCustomer(payload model.AsaasCustomerPayload) (string, error) {
	resp, err := a.doRequest(http.MethodPost, "/customers", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		asaasErr := decodeAsaasError(resp)
		raw, _ := json.Marshal(asaasErr)
		return "", errors.New("asaas recusou o cadastro de cliente: " + string(raw))
	}

	var customer model.AsaasCustomerResponse
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return "", err
	}
	if customer.Id == "" {
		return "", errors.New("asaas não retornou o id do cliente")
	}
	return customer.Id, nil
}

// CreateCharge cria a cobrança; em caso de recusa devolve o erro
// estruturado do gateway para ser repassado em "details".
func (a *Asaas) CreateCharge(payload model.AsaasChargePayload) (*model.AsaasCharge, *model.AsaasErrorResponse, error) {
	resp, err := a.doRequest(http.MethodPost, "/payments", payload)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAsaasError(resp), nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var charge model.AsaasCharge
	if err := json.Unmarshal(raw, &charge); err != nil {
		return nil, nil, err
	}
	// Resposta bruta preservada para o fluxo de cartão
	if err := json.Unmarshal(raw, &charge.Raw); err != nil {
		charge.Raw = nil
	}
	return &charge, nil, nil
}

// GetPixQrCode busca a imagem e o copia-e-cola da cobrança PIX.
func (a *Asaas) GetPixQrCode(paymentId string) (*model.AsaasPixQrCode, *model.AsaasErrorResponse, error) {
	resp, err := a.doRequest(http.MethodGet, "/payments/"+paymentId+"/pixQrCode", nil)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAsaasError(resp), nil
	}

	var qr model.AsaasPixQrCode
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, nil, err
	}
	return &qr, nil, nil
}
