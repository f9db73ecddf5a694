package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}

	cartStore := cart.NewStore(db)

	r := gin.Default()
	r.Static("/public", "./public")

	r.GET("/", handlers.Home())

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/medicines", handlers.GetMedicines(db))
	r.GET("/medicines/:id", handlers.GetMedicine(db))
	r.GET("/categories", handlers.GetCategories(db))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.PUT("/profile", handlers.UpdateProfile(db))
		user.PUT("/password", handlers.ChangePassword(db))
		user.GET("/overview", handlers.UserOverview(db, cartStore))

		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))

		user.GET("/cart", handlers.GetCart(db, cartStore))
		user.POST("/cart", handlers.AddToCart(cartStore))
		user.PUT("/cart/:id", handlers.UpdateCartItem(cartStore))
		user.DELETE("/cart/:id", handlers.RemoveCartItem(cartStore))
		user.DELETE("/cart", handlers.ClearCart(cartStore))

		user.POST("/orders", handlers.Checkout(db, cartStore))
		user.GET("/orders", handlers.GetMyOrders(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/medicines", handlers.GetAllMedicines(db))
		admin.POST("/medicines", handlers.CreateMedicine(db))
		admin.PUT("/medicines/:id", handlers.UpdateMedicine(db))
		admin.POST("/medicines/:id/stock", handlers.AdjustStock(db))
		admin.DELETE("/medicines/:id", handlers.DeleteMedicine(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.GET("/orders/stream", handlers.StreamOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.POST("/orders/:id/invoice", handlers.GenerateInvoice(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.GET("/users", handlers.GetUsers(db))
		admin.PUT("/users/:id/role", handlers.UpdateUserRole(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))

		admin.GET("/overview", handlers.AdminOverview(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
