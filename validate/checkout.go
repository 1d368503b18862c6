package validate

import (
	"fmt"

	"park_manager/model"

	"github.com/gofiber/fiber/v2"
)

func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Não foi possível ler a requisição: %s", err.Error()),
			})
		}

		if input.PaymentMethod == "" || input.TotalValue == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Método de pagamento e valor total são obrigatórios.",
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("Checkout", input)

		return c.Next()
	}
}
