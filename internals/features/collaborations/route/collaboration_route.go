package route

import (
	"github.com/gofiber/fiber/v2"

	collaborationController "voc_backend/internals/features/collaborations/controller"
	"voc_backend/internals/features/collaborations/service"
	"voc_backend/internals/middlewares"
)

// CollaborationRoutes mounts the authenticated collaboration endpoints under
// /api/collaborations. The static dashboard path is registered before the
// :questionId routes so it is not captured as a parameter.
func CollaborationRoutes(api fiber.Router, svc *service.CollaborationService) {
	ctl := collaborationController.NewCollaborationController(svc)
	write := middlewares.WriteRateLimiter()

	api.Get("/", ctl.GetCollaborations)
	api.Get("/managers/col/dashboard", ctl.GetMonthlyCounts)

	api.Put("/:collaborationId/decision/complete", write, ctl.CompleteCollaboration)
	api.Put("/:collaborationId/decision", write, ctl.UpdateCollaborationStatus)
	api.Put("/:collaborationId/modify", write, ctl.ModifyCollaboration)

	api.Post("/:questionId", write, ctl.CreateCollaboration)
	api.Get("/:questionId/:collaborationId", ctl.GetCollaborationByID)
}
