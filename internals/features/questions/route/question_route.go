package route

import (
	"github.com/gofiber/fiber/v2"

	questionController "voc_backend/internals/features/questions/controller"
	"voc_backend/internals/features/questions/service"
	"voc_backend/internals/middlewares"
)

// QuestionRoutes mounts the authenticated question endpoints under
// /api/questions. Mutating routes carry the tighter write rate limit.
func QuestionRoutes(api fiber.Router, svc *service.QuestionService) {
	ctl := questionController.NewQuestionController(svc)
	write := middlewares.WriteRateLimiter()

	api.Get("/managers", ctl.GetQuestionsByManager)
	api.Get("/managers/:questionId", ctl.GetQuestionByIDForManager)
	api.Delete("/managers/:questionId", write, ctl.DeleteQuestionByManager)

	api.Get("/customers/:userId", ctl.GetQuestionsByCustomer)
	api.Get("/customers/:userId/:questionId", ctl.GetQuestionByIDForCustomer)
	api.Post("/customers/:userId/:inquiryId", write, ctl.CreateInquiryQuestion)
	api.Post("/customers/:userId", write, ctl.CreateGeneralQuestion)
	api.Put("/customers/:userId/:inquiryId/:questionId", write, ctl.UpdateInquiryQuestion)
	api.Put("/customers/:userId/:questionId", write, ctl.UpdateGeneralQuestion)
	api.Delete("/customers/:userId/:questionId", write, ctl.DeleteQuestionByCustomer)
}

// MobileQuestionRoutes mounts the unauthenticated mobile mirrors under
// /mobile/api/questions.
func MobileQuestionRoutes(api fiber.Router, svc *service.QuestionService) {
	ctl := questionController.NewMobileQuestionController(svc)

	api.Get("/", ctl.GetAllQuestions)
	api.Get("/search", ctl.SearchQuestions)
	api.Get("/:questionId", ctl.GetQuestionByID)
}
