package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"voc_backend/internals/clients"
	"voc_backend/internals/configs"
	answerRepository "voc_backend/internals/features/answers/repository"
	answerRoute "voc_backend/internals/features/answers/route"
	answerService "voc_backend/internals/features/answers/service"
	collaborationRepository "voc_backend/internals/features/collaborations/repository"
	collaborationRoute "voc_backend/internals/features/collaborations/route"
	collaborationService "voc_backend/internals/features/collaborations/service"
	questionRepository "voc_backend/internals/features/questions/repository"
	questionRoute "voc_backend/internals/features/questions/route"
	questionService "voc_backend/internals/features/questions/service"
	"voc_backend/internals/helpers/lock"
	"voc_backend/internals/middlewares/auth"
)

// SetupRoutes wires repositories, remote clients and services, then mounts
// the authenticated /api group and the open /mobile/api mirrors.
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	users := clients.NewUserClient(configs.UserServiceURL)
	inquiries := clients.NewInquiryClient(configs.InquiryServiceURL)
	files := clients.NewFileClient(configs.FileServiceURL)

	questions := questionRepository.NewQuestionRepository(db)
	answers := answerRepository.NewAnswerRepository(db)
	collaborations := collaborationRepository.NewCollaborationRepository(db)

	questionSvc := questionService.NewQuestionService(questions, collaborations, users, inquiries, files)
	answerSvc := answerService.NewAnswerService(answers, questions, users, inquiries, files)
	collaborationSvc := collaborationService.NewCollaborationService(
		collaborations, questions, users, files, lock.NewRedisLocker(rdb))

	api := app.Group("/api", auth.RequireAuth(users))
	questionRoute.QuestionRoutes(api.Group("/questions"), questionSvc)
	answerRoute.AnswerRoutes(api.Group("/answers"), answerSvc)
	collaborationRoute.CollaborationRoutes(api.Group("/collaborations"), collaborationSvc)

	mobile := app.Group("/mobile/api")
	questionRoute.MobileQuestionRoutes(mobile.Group("/questions"), questionSvc)
	answerRoute.MobileAnswerRoutes(mobile.Group("/answers"), answerSvc)
}
