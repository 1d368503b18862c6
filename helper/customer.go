package helper

import (
	"log"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/model"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var customerReconciler gocron.Scheduler

func CheckByEmailCustomer(email string, tx *gorm.DB) (bool, error) {
	db := tx
	if db == nil {
		db = database.DB
	}
	var count int64
	if err := db.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildAsaasCustomerPayload monta o payload de cadastro no gateway a
// partir do perfil já completo.
func BuildAsaasCustomerPayload(customer *model.Customer) model.AsaasCustomerPayload {
	return model.AsaasCustomerPayload{
		Name:          deref(customer.FullName),
		Email:         customer.Email,
		MobilePhone:   deref(customer.Phone),
		CpfCnpj:       deref(customer.CpfCnpj),
		Address:       deref(customer.Address),
		AddressNumber: deref(customer.AddressNumber),
		Complement:    deref(customer.Complement),
		Province:      deref(customer.Province),
		PostalCode:    deref(customer.PostalCode),
	}
}

// ReconcileGatewayCustomers reprocessa perfis completos que ficaram sem
// cliente no gateway (status pending/failed) por falha transitória.
func ReconcileGatewayCustomers() {
	log.Println("[CRON] ReconcileGatewayCustomers triggered")

	db := database.DB
	var customers []model.Customer
	if err := db.Where("profile_complete = ? AND asaas_customer_id IS NULL AND gateway_status IN ?",
		true, []string{constants.GATEWAY_PENDING, constants.GATEWAY_FAILED}).
		Find(&customers).Error; err != nil {
		log.Printf("Erro ao buscar clientes pendentes: %v", err)
		return
	}

	if len(customers) == 0 {
		return
	}

	asaas := NewAsaas()
	for _, customer := range customers {
		asaasId, err := asaas.CreateCustomer(BuildAsaasCustomerPayload(&customer))
		if err != nil {
			log.Printf("Reconciliação falhou para cliente %d: %v", customer.ID, err)
			db.Model(&customer).Update("gateway_status", constants.GATEWAY_FAILED)
			continue
		}

		if err := db.Model(&customer).Updates(map[string]any{
			"asaas_customer_id": asaasId,
			"gateway_status":    constants.GATEWAY_LINKED,
		}).Error; err != nil {
			log.Printf("Erro ao salvar vínculo do cliente %d: %v", customer.ID, err)
			continue
		}
		log.Printf("Cliente %d vinculado ao gateway (%s)", customer.ID, asaasId)
	}
}

func StartCustomerReconciler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Erro ao criar reconciliador de clientes: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(ReconcileGatewayCustomers),
	)
	if err != nil {
		log.Printf("Erro ao agendar reconciliador de clientes: %v", err)
		return
	}

	customerReconciler = s
	s.Start()
	log.Println("Reconciliador de clientes do gateway iniciado (a cada 15 minutos)")
}

func StopCustomerReconciler() {
	if customerReconciler != nil {
		_ = customerReconciler.Shutdown()
		log.Println("Reconciliador de clientes do gateway parado")
	}
}
