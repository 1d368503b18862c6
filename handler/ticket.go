package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/model"
	"park_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMyTickets lista os ingressos do cliente logado, com QR renderizado.
func GetMyTickets(c *fiber.Ctx) error {
	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": constants.INVALID_TOKEN,
		})
	}

	var tickets []model.Ticket
	if err := database.DB.
		Where("customer_id = ?", customer.ID).
		Order("created_at desc").
		Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Erro ao carregar ingressos", err)
	}

	response := []map[string]interface{}{}
	for _, ticket := range tickets {
		qrBase64 := ""
		qrBytes, err := utils.GenerateQRCode(ticket.Code, 400)
		if err != nil {
			log.Printf("Erro ao gerar QR do ingresso %s: %v", ticket.Code, err)
		} else {
			qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
		}

		response = append(response, map[string]interface{}{
			"code":            ticket.Code,
			"itemName":        ticket.ItemName,
			"itemDescription": ticket.ItemDescription,
			"validated":       ticket.Validated,
			"validatedAt":     ticket.ValidatedAt,
			"expiresAt":       ticket.ExpiresAt,
			"qrCode":          qrBase64,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetMyOrders lista os pedidos confirmados do cliente logado.
func GetMyOrders(c *fiber.Ctx) error {
	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": constants.INVALID_TOKEN,
		})
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Cart").
		Preload("Tickets").
		Where("customer_id = ?", customer.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Erro ao carregar pedidos", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// ValidateTicket resgata um ingresso no portão (conta interna) e publica o
// evento no canal de check-in.
func ValidateTicket(c *fiber.Ctx) error {
	_, isAdmin, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Sem permissão", nil)
	}

	code := c.Params("code")
	db := database.DB

	var ticket model.Ticket
	if err := db.Where("code = ?", code).First(&ticket).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ingresso não encontrado"})
	}

	if ticket.Validated {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error":       "Ingresso já utilizado",
			"validatedAt": ticket.ValidatedAt,
		})
	}

	now := time.Now()
	if now.After(ticket.ExpiresAt) {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Ingresso expirado"})
	}

	// Update condicional evita resgate duplo em dois portões ao mesmo tempo
	result := db.Model(&model.Ticket{}).
		Where("id = ? AND validated = ?", ticket.ID, false).
		Updates(map[string]any{"validated": true, "validated_at": now})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Ingresso já utilizado"})
	}

	payload, _ := json.Marshal(fiber.Map{
		"code":        ticket.Code,
		"itemName":    ticket.ItemName,
		"validatedAt": now,
	})
	if err := redisClient.Publish(context.Background(), checkinChannel, payload).Err(); err != nil {
		log.Printf("Erro ao publicar check-in no Redis: %v", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"code":        ticket.Code,
		"itemName":    ticket.ItemName,
		"validatedAt": now,
	})
}
