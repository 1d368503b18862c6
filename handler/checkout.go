package handler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"park_manager/constants"
	"park_manager/database"
	"park_manager/helper"
	"park_manager/model"
	"park_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func buildCartItems(input model.CheckoutInput) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(input.Cart))
	for _, line := range input.Cart {
		items = append(items, model.OrderItem{
			ItemId:      line.Id,
			Name:        line.Name,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price,
		})
	}
	return items
}

// Checkout cria o pedido PENDING e a cobrança no gateway. O pedido é
// gravado antes da chamada ao Asaas para que o webhook consiga localizá-lo
// pelo id da cobrança.
func Checkout(c *fiber.Ctx) error {
	db := database.DB

	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": constants.INVALID_TOKEN,
		})
	}

	input, ok := c.Locals("Checkout").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if customer.AsaasCustomerId == nil || *customer.AsaasCustomerId == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": constants.PROFILE_NOT_FOUND,
		})
	}
	asaasCustomerId := *customer.AsaasCustomerId

	// Vencimento em 1 dia
	dueDate := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	fullName := ""
	if customer.FullName != nil {
		fullName = *customer.FullName
	}
	description := fmt.Sprintf("Pedido de %s", fullName)

	order := model.Order{
		PublicCode:    helper.GenerateOrderCode(),
		CustomerId:    customer.ID,
		TotalValue:    input.TotalValue,
		Status:        constants.ORDER_PENDING,
		PaymentMethod: input.PaymentMethod,
		Cart:          buildCartItems(input),
	}

	asaas := helper.NewAsaas()

	switch input.PaymentMethod {
	case constants.PAYMENT_PIX:
		charge, asaasErr, err := asaas.CreateCharge(model.AsaasChargePayload{
			Customer:          asaasCustomerId,
			BillingType:       constants.PAYMENT_PIX,
			Value:             input.TotalValue,
			DueDate:           dueDate,
			Description:       description,
			ExternalReference: order.PublicCode,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao gerar cobrança PIX.", "details": err.Error(),
			})
		}
		if asaasErr != nil {
			log.Printf("Asaas recusou a cobrança PIX: %+v", asaasErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao gerar cobrança PIX.", "details": asaasErr,
			})
		}
		if charge.Id == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "ID do pagamento não retornado pelo Asaas.",
			})
		}

		order.AsaasPaymentId = charge.Id
		order.AsaasStatus = charge.Status
		if err := db.Create(&order).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}

		qr, asaasErr, err := asaas.GetPixQrCode(charge.Id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao obter QR Code do PIX.", "details": err.Error(),
			})
		}
		if asaasErr != nil {
			log.Printf("Asaas recusou a busca do QR Code: %+v", asaasErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao obter QR Code do PIX.", "details": asaasErr,
			})
		}

		return c.JSON(fiber.Map{
			"qrCode":         qr.EncodedImage,
			"payload":        qr.Payload,
			"expirationDate": charge.DueDate,
			"orderCode":      order.PublicCode,
		})

	case constants.PAYMENT_CREDIT_CARD:
		if input.CreditCard == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Dados do cartão de crédito são obrigatórios.",
			})
		}

		charge, asaasErr, err := asaas.CreateCharge(model.AsaasChargePayload{
			Customer:          asaasCustomerId,
			BillingType:       constants.PAYMENT_CREDIT_CARD,
			Value:             input.TotalValue,
			DueDate:           dueDate,
			Description:       description,
			ExternalReference: order.PublicCode,
			CreditCard: &model.AsaasCreditCard{
				HolderName:  input.CreditCard.HolderName,
				Number:      input.CreditCard.Number,
				ExpiryMonth: input.CreditCard.ExpiryMonth,
				ExpiryYear:  input.CreditCard.ExpiryYear,
				Ccv:         input.CreditCard.Ccv,
			},
			CreditCardHolderInfo: &model.AsaasCreditCardHolderInfo{
				Name:          fullName,
				Email:         customer.Email,
				CpfCnpj:       derefOrEmpty(customer.CpfCnpj),
				PostalCode:    derefOrEmpty(customer.PostalCode),
				AddressNumber: derefOrEmpty(customer.AddressNumber),
				Phone:         derefOrEmpty(customer.Phone),
			},
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao processar pagamento com cartão.", "details": err.Error(),
			})
		}
		if asaasErr != nil {
			log.Printf("Asaas recusou a cobrança com cartão: %+v", asaasErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Falha ao processar pagamento com cartão.", "details": asaasErr,
			})
		}

		order.AsaasPaymentId = charge.Id
		order.AsaasStatus = charge.Status
		if err := db.Create(&order).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}

		// Repassa o objeto da cobrança como o gateway devolveu
		if charge.Raw != nil {
			return c.JSON(charge.Raw)
		}
		return c.JSON(charge)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Método de pagamento não suportado.",
		})
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
