package controller

import (
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/features/answers/service"
	helper "voc_backend/internals/helpers"
)

type MobileAnswerController struct {
	service *service.AnswerService
}

func NewMobileAnswerController(svc *service.AnswerService) *MobileAnswerController {
	return &MobileAnswerController{service: svc}
}

// GET /mobile/api/answers/:questionId
func (ctl *MobileAnswerController) GetAnswerByQuestionID(c *fiber.Ctx) error {
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
