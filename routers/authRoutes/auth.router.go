package authRoutes

import (
	authController "lms/controllers/auth"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the authentication endpoints
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/v1/auth")

	authGroup.Post("/register", authValidator.Signup(), authController.Signup)
	authGroup.Post("/signin", authValidator.Signin(), authController.SignIn)
	authGroup.Post("/signout", authController.SignOut)
}
