package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jayden7895/afyabora-app/controllers"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/models"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Product     *controllers.ProductController
	Cart        *controllers.CartController
	Checkout    *controllers.CheckoutController
	Order       *controllers.OrderController
	Payment     *controllers.PaymentController
	Interaction *controllers.InteractionController
}

func Register(r *gin.Engine, c Controllers, jwtSecret, uploadDir string) {
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "AfyaBora E-Pharmacy API is running")
	})
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")

	api.POST("/auth/login", c.Auth.Login)
	api.POST("/seed", c.Product.SeedProducts)
	api.POST("/interactions", c.Interaction.Check)

	// Public catalog
	api.GET("/products", c.Product.ListProducts)
	api.GET("/products/:id", c.Product.GetProduct)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(jwtSecret))
	{
		auth.POST("/upload", c.Checkout.Upload)

		auth.GET("/cart", c.Cart.GetCart)
		auth.POST("/cart/items", c.Cart.AddItem)
		auth.DELETE("/cart/items/:productId", c.Cart.RemoveItem)
		auth.DELETE("/cart", c.Cart.ClearCart)
		auth.POST("/wishlist/toggle", c.Cart.ToggleWishlist)

		auth.POST("/checkout", c.Checkout.Checkout)
		auth.POST("/mpesa/stkpush", c.Payment.InitiateSTKPush)
		auth.GET("/mpesa/status/:requestId", c.Payment.QueryStatus)

		auth.GET("/orders", c.Order.GetOrders)
		auth.GET("/orders/:id", c.Order.GetOrderByID)
	}

	// Status updates are open to admins and delivery agents; the lifecycle
	// table decides per-transition authority.
	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(models.RoleAdmin, models.RoleDeliveryAgent))
	{
		staff.PATCH("/orders/:id/status", c.Order.UpdateStatus)
		staff.GET("/delivery/orders", c.Order.GetDeliveryOrders)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/orders", c.Order.GetAllOrders)
		admin.GET("/agents", c.Order.ListAgents)
	}

	adminAPI := api.Group("")
	adminAPI.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(models.RoleAdmin))
	{
		adminAPI.POST("/products", c.Product.CreateProduct)
		adminAPI.PUT("/products/:id", c.Product.UpdateProduct)
		adminAPI.DELETE("/products/:id", c.Product.DeleteProduct)
		adminAPI.PATCH("/orders/:id/assign", c.Order.AssignAgent)
	}
}
