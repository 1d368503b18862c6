package handler

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/model"
	"park_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func isConfirmationEvent(event string) bool {
	return event == constants.EVENT_PAYMENT_CONFIRMED || event == constants.EVENT_PAYMENT_RECEIVED
}

// AsaasWebhook processa os callbacks do gateway. O Asaas reentrega o
// evento até receber 200, então a transição PENDING→CONFIRMED é um update
// condicional: se nenhuma linha foi afetada, outra entrega já processou o
// pedido e a emissão de ingressos é pulada.
func AsaasWebhook(c *fiber.Ctx) error {
	asaasToken := c.Get("Asaas-Access-Token")
	if asaasToken == "" || asaasToken != os.Getenv("ASAAS_WEBHOOK_TOKEN") {
		log.Printf("Webhook com token inválido: %q", asaasToken)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token de webhook inválido.",
		})
	}

	var event model.AsaasWebhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Erro interno no processamento do webhook.", err)
	}

	if event.Payment == nil || !isConfirmationEvent(event.Event) {
		log.Printf("Webhook recebido, mas não é confirmação de pagamento: %s", event.Event)
		return c.JSON(fiber.Map{"message": "Webhook recebido com sucesso."})
	}

	db := database.DB
	asaasPaymentId := event.Payment.Id
	log.Printf("Webhook para pagamento Asaas %s com status %s", asaasPaymentId, event.Payment.Status)

	// Update condicional: só confirma quem ainda está PENDING
	now := time.Now()
	result := db.Model(&model.Order{}).
		Where("asaas_payment_id = ? AND status = ?", asaasPaymentId, constants.ORDER_PENDING).
		Updates(map[string]any{
			"status":       constants.ORDER_CONFIRMED,
			"asaas_status": event.Payment.Status,
			"paid_at":      now,
		})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Erro interno no processamento do webhook.", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		db.Model(&model.Order{}).Where("asaas_payment_id = ?", asaasPaymentId).Count(&count)
		if count == 0 {
			log.Printf("Webhook para asaasPaymentId %s sem pedido correspondente", asaasPaymentId)
			return c.JSON(fiber.Map{"message": "Pagamento não encontrado, mas webhook recebido."})
		}
		log.Printf("Pedido do pagamento %s já confirmado; entrega duplicada ignorada", asaasPaymentId)
		return c.JSON(fiber.Map{"message": "Webhook recebido com sucesso."})
	}

	var order model.Order
	if err := db.Preload("Cart").Preload("Customer").
		Where("asaas_payment_id = ?", asaasPaymentId).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"message": "Pagamento não encontrado, mas webhook recebido."})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Erro interno no processamento do webhook.", err)
	}

	log.Printf("Pedido %s (Asaas %s) atualizado para CONFIRMED", order.PublicCode, asaasPaymentId)

	if len(order.Cart) == 0 {
		log.Printf("Pedido %s sem itens de carrinho para gerar ingressos", order.PublicCode)
		return c.JSON(fiber.Map{"message": "Webhook recebido com sucesso."})
	}

	tickets := issueTickets(db, &order)

	if order.Customer.Email != "" && len(tickets) > 0 {
		lines := make([]utils.TicketLine, 0, len(tickets))
		for _, t := range tickets {
			lines = append(lines, utils.TicketLine{ItemName: t.ItemName, Code: t.Code})
		}
		utils.SendTicketConfirmationEmail(order.Customer.Email, utils.TicketConfirmationData{
			OrderCode:  order.PublicCode,
			TotalValue: order.TotalValue,
			Tickets:    lines,
			DetailLink: os.Getenv("APP_URL") + "/pedido/" + order.PublicCode,
		})
	}

	return c.JSON(fiber.Map{"message": "Webhook recebido com sucesso."})
}

// issueTickets gera um ingresso por unidade comprada.
func issueTickets(db *gorm.DB, order *model.Order) []model.Ticket {
	createdAt := time.Now()
	expiresAt := createdAt.AddDate(0, 0, 1)

	var created []model.Ticket
	for _, item := range order.Cart {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		itemName := item.Name
		if itemName == "" {
			itemName = "Ingresso"
		}
		itemDescription := item.Description
		if itemDescription == "" {
			itemDescription = "Acesso ao parque - " + itemName
		}

		for i := 0; i < quantity; i++ {
			ticket := model.Ticket{
				OrderId:         order.ID,
				CustomerId:      order.CustomerId,
				ProductId:       item.ItemId,
				ItemName:        itemName,
				ItemDescription: itemDescription,
				Code:            helper.GenerateTicketCode(db, item.ItemId),
				Validated:       false,
				ExpiresAt:       expiresAt,
			}
			if err := db.Create(&ticket).Error; err != nil {
				log.Printf("Erro ao criar ingresso do item %s: %v", item.ItemId, err)
				continue
			}
			created = append(created, ticket)
			log.Printf("Ingresso %s (%s, %d/%d) criado para o cliente %d", ticket.Code, itemName, i+1, quantity, order.CustomerId)
		}
	}
	return created
}
