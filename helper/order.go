package helper

import (
	"log"
	"strings"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/model"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var orderScheduler *cron.Cron

// GenerateOrderCode gera o código público do pedido (ex.: ORD-1A2B3C4D).
func GenerateOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func StartOrderScheduler() {
	orderScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// A cobrança PIX vence em 1 dia; varre a cada 30 minutos
	_, err := orderScheduler.AddFunc("*/30 * * * *", ExpireStaleOrders)
	if err != nil {
		log.Printf("Erro ao iniciar scheduler de pedidos: %v", err)
		return
	}

	orderScheduler.Start()
	log.Println("Scheduler de pedidos iniciado (a cada 30 minutos)")
}

// ExpireStaleOrders marca como EXPIRED pedidos pendentes além do vencimento.
func ExpireStaleOrders() {
	cutoff := time.Now().Add(-24 * time.Hour)
	result := database.DB.Model(&model.Order{}).
		Where("status = ? AND created_at < ?", constants.ORDER_PENDING, cutoff).
		Update("status", constants.ORDER_EXPIRED)

	if result.Error != nil {
		log.Printf("Erro ao expirar pedidos: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("%d pedidos marcados como EXPIRED", result.RowsAffected)
	}
}

func StopOrderScheduler() {
	if orderScheduler != nil {
		orderScheduler.Stop()
		log.Println("Scheduler de pedidos parado")
	}
}
