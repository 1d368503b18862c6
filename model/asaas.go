package model

type AsaasConfig struct {
	BaseURL      string
	APIKey       string
	WebhookToken string
}

type AsaasCustomerPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	MobilePhone   string `json:"mobilePhone"`
	CpfCnpj       string `json:"cpfCnpj"`
	Address       string `json:"address"`
	AddressNumber string `json:"addressNumber"`
	Complement    string `json:"complement,omitempty"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
}

type AsaasCustomerResponse struct {
	Id string `json:"id"`
}

type AsaasCreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	Ccv         string `json:"ccv"`
}

type AsaasCreditCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone"`
}

type AsaasChargePayload struct {
	Customer             string                     `json:"customer"`
	BillingType          string                     `json:"billingType"`
	Value                float64                    `json:"value"`
	DueDate              string                     `json:"dueDate"`
	Description          string                     `json:"description"`
	ExternalReference    string                     `json:"externalReference,omitempty"`
	CreditCard           *AsaasCreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *AsaasCreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

// AsaasCharge é a cobrança retornada pelo gateway. Mantemos o JSON bruto
// junto para repassar a resposta do cartão sem perder campos.
type AsaasCharge struct {
	Id         string  `json:"id"`
	Status     string  `json:"status"`
	Value      float64 `json:"value"`
	DueDate    string  `json:"dueDate"`
	InvoiceUrl string  `json:"invoiceUrl"`

	Raw map[string]any `json:"-"`
}

type AsaasPixQrCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

type AsaasError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// AsaasErrorResponse é o envelope de erro estruturado do gateway,
// repassado ao cliente sob a chave "details".
type AsaasErrorResponse struct {
	Errors []AsaasError `json:"errors"`
}

type AsaasWebhookPayment struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type AsaasWebhookEvent struct {
	Event   string               `json:"event"`
	Payment *AsaasWebhookPayment `json:"payment"`
}
