package validate

import (
	"fmt"

	"park_manager/constants"
	"park_manager/model"

	"github.com/gofiber/fiber/v2"
)

func RegisterCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterCustomerInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if input.Email == "" || input.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": constants.MISSING_LOGIN_INPUT,
			})
		}

		c.Locals("RegisterCustomer", input)

		return c.Next()
	}
}

// UpdateProfile valida os campos obrigatórios do perfil, na ordem, e
// devolve 400 nomeando o primeiro campo ausente.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateProfileInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		requiredFields := []struct {
			key   string
			value string
		}{
			{"fullName", input.FullName},
			{"phone", input.Phone},
			{"cpfCnpj", input.CpfCnpj},
			{"address", input.Address},
			{"addressNumber", input.AddressNumber},
			{"province", input.Province},
			{"postalCode", input.PostalCode},
		}
		for _, field := range requiredFields {
			if field.value == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("O campo %s é obrigatório.", field.key),
				})
			}
		}

		c.Locals("UpdateProfile", input)

		return c.Next()
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ForgotPasswordRequest

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("EmailForgotPassword", input)

		return c.Next()
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ResetPasswordRequest

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("ResetPassword", input)

		return c.Next()
	}
}
