package controller

import (
	"mime/multipart"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/features/questions/dto"
	"voc_backend/internals/features/questions/model"
	"voc_backend/internals/features/questions/repository"
	"voc_backend/internals/features/questions/service"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

var validate = validator.New()

type QuestionController struct {
	service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{service: svc}
}

// GET /api/questions/managers
func (ctl *QuestionController) GetQuestionsByManager(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	filter, customerName, err := parseQuestionFilter(c, true)
	if err != nil {
		return helper.JsonError(c, err)
	}

	page := helper.ParsePageRequest(c)

	result, err := ctl.service.ListForManager(c.UserContext(), principal, filter, customerName, page)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// GET /api/questions/managers/:questionId
func (ctl *QuestionController) GetQuestionByIDForManager(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.GetByIDForManager(c.UserContext(), principal, int64(questionID))
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// GET /api/questions/customers/:userId
func (ctl *QuestionController) GetQuestionsByCustomer(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	filter, _, err := parseQuestionFilter(c, false)
	if err != nil {
		return helper.JsonError(c, err)
	}

	page := helper.ParsePageRequest(c)

	result, err := ctl.service.ListForCustomer(c.UserContext(), principal, int64(userID), filter, page)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// GET /api/questions/customers/:userId/:questionId
func (ctl *QuestionController) GetQuestionByIDForCustomer(c *fiber.Ctx) error {
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

	result, err := ctl.service.GetByIDForCustomer(c.UserContext(), principal, int64(userID), int64(questionID))
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// POST /api/questions/customers/:userId/:inquiryId
func (ctl *QuestionController) CreateInquiryQuestion(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}
	inquiryID, err := c.ParamsInt("inquiryId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.QuestionCreateRequest
	file, err := parseMultipart(c, "question", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.CreateFromInquiry(c.UserContext(), principal, int64(userID), int64(inquiryID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// POST /api/questions/customers/:userId
func (ctl *QuestionController) CreateGeneralQuestion(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.QuestionCreateRequest
	file, err := parseMultipart(c, "question", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.CreateGeneral(c.UserContext(), principal, int64(userID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// PUT /api/questions/customers/:userId/:inquiryId/:questionId
func (ctl *QuestionController) UpdateInquiryQuestion(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}
	inquiryID, err := c.ParamsInt("inquiryId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.QuestionUpdateRequest
	file, err := parseMultipart(c, "question", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.UpdateInquiryQuestion(
		c.UserContext(), principal, int64(userID), int64(inquiryID), int64(questionID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// PUT /api/questions/customers/:userId/:questionId
func (ctl *QuestionController) UpdateGeneralQuestion(c *fiber.Ctx) error {
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

	var req dto.QuestionUpdateRequest
	file, err := parseMultipart(c, "question", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.UpdateGeneralQuestion(
		c.UserContext(), principal, int64(userID), int64(questionID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// DELETE /api/questions/customers/:userId/:questionId
func (ctl *QuestionController) DeleteQuestionByCustomer(c *fiber.Ctx) error {
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

	if err := ctl.service.DeleteForCustomer(c.UserContext(), principal, int64(userID), int64(questionID)); err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, nil)
}

// DELETE /api/questions/managers/:questionId
func (ctl *QuestionController) DeleteQuestionByManager(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	if err := ctl.service.DeleteForManager(c.UserContext(), principal, int64(questionID)); err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, nil)
}

// parseMultipart reads the optional "files" attachment and decodes the named
// JSON part into out. A plain JSON body (no multipart) is accepted too.
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

// parseQuestionFilter reads the shared listing query params. Manager listings
// additionally accept customerName, isActivated and managerId.
func parseQuestionFilter(c *fiber.Ctx, managerView bool) (repository.QuestionFilter, string, error) {
	var f repository.QuestionFilter

	if raw := c.Query("status"); raw != "" {
		status := model.QuestionStatus(raw)
		if !status.Valid() {
			return f, "", helper.ErrInvalidRequest
		}
		f.Status = &status
	}
	if raw := c.Query("type"); raw != "" {
		qType := model.QuestionType(raw)
		if !qType.Valid() {
			return f, "", helper.ErrInvalidRequest
		}
		f.Type = &qType
	}

	f.Title = c.Query("title")

	questionID, err := helper.QueryInt64(c, "questionId")
	if err != nil {
		return f, "", err
	}
	f.QuestionID = questionID

	f.StartDate, err = helper.QueryDate(c, "startDate")
	if err != nil {
		return f, "", err
	}
	f.EndDate, err = helper.QueryDate(c, "endDate")
	if err != nil {
		return f, "", err
	}

	customerName := ""
	if managerView {
		customerName = c.Query("customerName")

		f.IsActivated, err = helper.QueryBool(c, "isActivated")
		if err != nil {
			return f, "", err
		}
		f.ManagerID, err = helper.QueryInt64(c, "managerId")
		if err != nil {
			return f, "", err
		}
	}

	return f, customerName, nil
}
