package router

import (
	"park_manager/handler"
	"park_manager/middleware"
	"park_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Fluxo principal da vitrine (mesmos caminhos consumidos pelo front)
	app.Post("/auth/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	app.Post("/auth/login", handler.CustomerLogin)
	app.Post("/user/profile", middleware.CustomerProtected(), validate.UpdateProfile(), handler.UpdateProfile)
	app.Get("/user/me", middleware.CustomerProtected(), handler.GetCurrentCustomer)
	app.Post("/checkout", middleware.CustomerProtected(), validate.Checkout(), handler.Checkout)

	// Server-to-Server
	app.Post("/webhook/asaas", handler.AsaasWebhook)

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	// Catálogo público
	v1.Get("/products", handler.GetProducts)
	v1.Get("/combos", handler.GetCombos)

	// Área do cliente
	v1.Get("/orders", middleware.CustomerProtected(), handler.GetMyOrders)
	v1.Get("/tickets", middleware.CustomerProtected(), handler.GetMyTickets)
	v1.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	v1.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// Contas internas (admin / portão)
	staff := v1.Group("/staff")
	staff.Post("/login", handler.Login)
	staff.Post("/refresh-token", handler.RefreshToken)

	// Portão
	ticket := v1.Group("/ticket", logger.New())
	ticket.Post("/validate/:code", middleware.Protected(), handler.ValidateTicket)
	ticket.Get("/feed", middleware.Protected(), websocket.New(handler.CheckinWebsocket))

	// Administração do catálogo
	product := v1.Group("/product", logger.New())
	product.Get("/", middleware.Protected(), handler.GetProductsAdmin)
	product.Post("/", middleware.Protected(), validate.CreateProduct(), handler.CreateProduct)
	product.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteProducts)
	product.Put("/:productId", middleware.Protected(), validate.EditProduct("productId"), handler.EditProduct)
	product.Post("/:productId/image", middleware.Protected(), handler.UploadProductImage)

	combo := v1.Group("/combo", logger.New())
	combo.Post("/", middleware.Protected(), validate.CreateCombo(), handler.CreateCombo)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)
}
