package route

import (
	"github.com/gofiber/fiber/v2"

	answerController "voc_backend/internals/features/answers/controller"
	"voc_backend/internals/features/answers/service"
	"voc_backend/internals/middlewares"
)

// AnswerRoutes mounts the authenticated answer endpoints under /api/answers.
// The static /managers/monthly path is registered before /managers/:questionId.
func AnswerRoutes(api fiber.Router, svc *service.AnswerService) {
	ctl := answerController.NewAnswerController(svc)
	write := middlewares.WriteRateLimiter()

	api.Get("/managers", ctl.GetAnswersForManager)
	api.Get("/managers/monthly", ctl.GetMonthlyCounts)
	api.Get("/managers/:questionId", ctl.GetAnswerByQuestionForManager)
	api.Post("/managers/:questionId", write, ctl.CreateAnswer)
	api.Put("/managers/:questionId", write, ctl.UpdateAnswer)
	api.Delete("/managers/:questionId", write, ctl.DeleteAnswer)

	api.Get("/customers/:userId", ctl.GetAnswersByCustomer)
	api.Get("/customers/:userId/:questionId", ctl.GetAnswerByQuestionForCustomer)
}

// MobileAnswerRoutes mounts the unauthenticated mobile mirror under
// /mobile/api/answers.
func MobileAnswerRoutes(api fiber.Router, svc *service.AnswerService) {
	ctl := answerController.NewMobileAnswerController(svc)

	api.Get("/:questionId", ctl.GetAnswerByQuestionID)
}
