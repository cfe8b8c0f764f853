package controller

import (
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/features/questions/service"
	helper "voc_backend/internals/helpers"
)

// MobileQuestionController serves the unauthenticated read-only mirrors.
type MobileQuestionController struct {
	service *service.QuestionService
}

func NewMobileQuestionController(svc *service.QuestionService) *MobileQuestionController {
	return &MobileQuestionController{service: svc}
}

// GET /mobile/api/questions
func (ctl *MobileQuestionController) GetAllQuestions(c *fiber.Ctx) error {
	result, err := ctl.service.MobileList(c.UserContext())
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /mobile/api/questions/:questionId
func (ctl *MobileQuestionController) GetQuestionByID(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.MobileGet(c.UserContext(), int64(questionID))
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /mobile/api/questions/search
func (ctl *MobileQuestionController) SearchQuestions(c *fiber.Ctx) error {
	filter, customerName, err := parseQuestionFilter(c, true)
	if err != nil {
		return helper.JsonError(c, err)
	}

	sortBy := c.Query("sortBy", helper.SortLatest)

	result, err := ctl.service.MobileSearch(c.UserContext(), filter, customerName, sortBy)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}
