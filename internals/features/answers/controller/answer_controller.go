package controller

import (
	"mime/multipart"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/features/answers/dto"
	"voc_backend/internals/features/answers/service"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AnswerController struct {
	service *service.AnswerService
}

func NewAnswerController(svc *service.AnswerService) *AnswerController {
	return &AnswerController{service: svc}
}

// GET /api/answers/managers
func (ctl *AnswerController) GetAnswersForManager(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	result, err := ctl.service.ListAll(c.UserContext(), principal)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /api/answers/managers/monthly
func (ctl *AnswerController) GetMonthlyCounts(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	result, err := ctl.service.MonthlyCounts(c.UserContext(), principal)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /api/answers/managers/:questionId
func (ctl *AnswerController) GetAnswerByQuestionForManager(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.GetByQuestionForManager(c.UserContext(), principal, int64(questionID))
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /api/answers/customers/:userId
func (ctl *AnswerController) GetAnswersByCustomer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.ListByCustomer(c.UserContext(), principal, int64(userID))
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// GET /api/answers/customers/:userId/:questionId
func (ctl *AnswerController) GetAnswerByQuestionForCustomer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.GetByQuestionForCustomer(c.UserContext(), principal, int64(userID), int64(questionID))
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// POST /api/answers/managers/:questionId
func (ctl *AnswerController) CreateAnswer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.AnswerCreateRequest
	file, err := parseMultipart(c, "answer", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.Create(c.UserContext(), principal, int64(questionID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// PUT /api/answers/managers/:questionId
func (ctl *AnswerController) UpdateAnswer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.AnswerUpdateRequest
	file, err := parseMultipart(c, "answer", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.Update(c.UserContext(), principal, int64(questionID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, result)
}

// DELETE /api/answers/managers/:questionId
func (ctl *AnswerController) DeleteAnswer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	if err := ctl.service.Delete(c.UserContext(), principal, int64(questionID)); err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, nil)
}

func parseMultipart(c *fiber.Ctx, part string, out interface{}) (*multipart.FileHeader, error) {
	raw := c.FormValue(part)
	if raw == "" {
		if err := sonic.Unmarshal(c.Body(), out); err != nil {
			return nil, helper.ErrInvalidRequest
		}
		return nil, nil
	}

	if err := sonic.Unmarshal([]byte(raw), out); err != nil {
		return nil, helper.ErrInvalidRequest
	}

	file, err := c.FormFile("files")
	if err != nil {
		return nil, nil
	}
	return file, nil
}
