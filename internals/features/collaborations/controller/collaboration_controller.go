package controller

import (
	"mime/multipart"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/features/collaborations/dto"
	"voc_backend/internals/features/collaborations/model"
	"voc_backend/internals/features/collaborations/repository"
	"voc_backend/internals/features/collaborations/service"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

var validate = validator.New()

type CollaborationController struct {
	service *service.CollaborationService
}

func NewCollaborationController(svc *service.CollaborationService) *CollaborationController {
	return &CollaborationController{service: svc}
}

// GET /api/collaborations
func (ctl *CollaborationController) GetCollaborations(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	filter, reqManagerName, resManagerName, err := parseCollaborationFilter(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	page := helper.ParsePageRequest(c)

	result, err := ctl.service.List(c.UserContext(), principal, filter, reqManagerName, resManagerName, page)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// GET /api/collaborations/:questionId/:collaborationId
func (ctl *CollaborationController) GetCollaborationByID(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}
	collaborationID, err := c.ParamsInt("collaborationId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.GetByID(c.UserContext(), principal, int64(questionID), int64(collaborationID))
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// POST /api/collaborations/:questionId
func (ctl *CollaborationController) CreateCollaboration(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.CollaborationCreateRequest
	file, err := parseMultipart(c, "collaboration", &req)
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

// PUT /api/collaborations/:collaborationId/decision
func (ctl *CollaborationController) UpdateCollaborationStatus(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	collaborationID, err := c.ParamsInt("collaborationId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.CollaborationDecisionRequest
	file, err := parseMultipart(c, "collaboration", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.UpdateStatus(c.UserContext(), principal, int64(collaborationID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// PUT /api/collaborations/:collaborationId/decision/complete
func (ctl *CollaborationController) CompleteCollaboration(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	collaborationID, err := c.ParamsInt("collaborationId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	result, err := ctl.service.Complete(c.UserContext(), principal, int64(collaborationID))
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// PUT /api/collaborations/:collaborationId/modify
func (ctl *CollaborationController) ModifyCollaboration(c *fiber.Ctx) error {
	principal, err := auth.FromContext(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	collaborationID, err := c.ParamsInt("collaborationId")
	if err != nil {
		return helper.JsonError(c, helper.ErrInvalidRequest)
	}

	var req dto.CollaborationModifyRequest
	file, err := parseMultipart(c, "collaboration", &req)
	if err != nil {
		return helper.JsonError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.service.Modify(c.UserContext(), principal, int64(collaborationID), file, req)
	if err != nil {
		return helper.JsonError(c, err)
	}

	return helper.Success(c, result)
}

// GET /api/collaborations/managers/col/dashboard
func (ctl *CollaborationController) GetMonthlyCounts(c *fiber.Ctx) error {
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

func parseCollaborationFilter(c *fiber.Ctx) (repository.CollaborationFilter, string, string, error) {
	var f repository.CollaborationFilter
	var err error

	f.ColID, err = helper.QueryInt64(c, "colId")
	if err != nil {
		return f, "", "", err
	}

	if raw := c.Query("colStatus"); raw != "" {
		status := model.ColStatus(raw)
		if !status.Valid() {
			return f, "", "", helper.ErrInvalidRequest
		}
		f.ColStatus = &status
	}

	f.ColReqID, err = helper.QueryInt64(c, "colReqId")
	if err != nil {
		return f, "", "", err
	}
	f.ColResID, err = helper.QueryInt64(c, "colResId")
	if err != nil {
		return f, "", "", err
	}

	f.StartDate, err = helper.QueryDate(c, "startDate")
	if err != nil {
		return f, "", "", err
	}
	f.EndDate, err = helper.QueryDate(c, "endDate")
	if err != nil {
		return f, "", "", err
	}

	return f, c.Query("colReqManager"), c.Query("colResManager"), nil
}
