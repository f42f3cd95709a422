package workshopRoutes

import (
	workshopController "lms/controllers/workshop"
	"lms/middleware"
	"lms/models"
	workshopValidator "lms/validators/workshop"

	"github.com/gofiber/fiber/v2"
)

// SetupWorkshopRoutes wires the workshop catalog and registration endpoints.
// Static paths are registered before the :workshopId wildcard.
func SetupWorkshopRoutes(app *fiber.App) {
	workshopGroup := app.Group("/api/v1/workshops")

	workshopGroup.Get("/upcoming", workshopValidator.Pagination(), workshopController.GetUpcomingWorkshops)
	workshopGroup.Get("/previous", workshopValidator.Pagination(), workshopController.GetPreviousWorkshops)
	workshopGroup.Get("/mine", middleware.JWTMiddleware, workshopController.GetMyWorkshops)
	workshopGroup.Get("/registered", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), workshopController.GetRegisteredWorkshops)

	// Public share-link flow
	workshopGroup.Get("/share/:shareId", workshopValidator.ShareId(), workshopController.GetSharedWorkshop)
	workshopGroup.Post("/share/:shareId/register", workshopValidator.ShareId(), workshopValidator.SharedRegister(), workshopController.RegisterSharedWorkshop)

	workshopGroup.Post("/create", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), workshopValidator.SaveWorkshop(), workshopController.CreateWorkshop)

	workshopGroup.Get("/:workshopId", workshopValidator.WorkshopId(), workshopController.GetWorkshopById)
	workshopGroup.Put("/:workshopId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), workshopValidator.WorkshopId(), workshopValidator.SaveWorkshop(), workshopController.UpdateWorkshop)
	workshopGroup.Delete("/:workshopId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), workshopValidator.WorkshopId(), workshopController.DeleteWorkshop)

	workshopGroup.Post("/:workshopId/register", middleware.JWTMiddleware, workshopValidator.WorkshopId(), workshopController.RegisterForWorkshop)
	workshopGroup.Post("/:workshopId/unregister", middleware.JWTMiddleware, workshopValidator.WorkshopId(), workshopController.UnregisterFromWorkshop)
	workshopGroup.Get("/:workshopId/attendees", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), workshopValidator.WorkshopId(), workshopController.GetWorkshopAttendees)
}
