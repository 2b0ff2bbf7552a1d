package controllers

import (
	"inspection-backend/apperrors"
	"inspection-backend/middlewares"
	"inspection-backend/models"

	"github.com/gofiber/fiber/v2"
)

const phyParamNotFound = "Physical inspection parameter not found."

// Percentages are bounded to [0,100]; liveInsects and averageGrainLength only to >= 0.
type phyParamRequest struct {
	Broken             *float64 `json:"broken" validate:"required,gte=0,lte=100"`
	Purity             *float64 `json:"purity" validate:"required,gte=0,lte=100"`
	YellowKernel       *float64 `json:"yellowKernel" validate:"required,gte=0,lte=100"`
	DamageKernel       *float64 `json:"damageKernel" validate:"required,gte=0,lte=100"`
	RedKernel          *float64 `json:"redKernel" validate:"required,gte=0,lte=100"`
	PaddyKernel        *float64 `json:"paddyKernel" validate:"required,gte=0,lte=100"`
	ChalkyRice         *float64 `json:"chalkyRice" validate:"required,gte=0,lte=100"`
	LiveInsects        *float64 `json:"liveInsects" validate:"required,gte=0"`
	MillingDegree      string   `json:"millingDegree" validate:"required,oneof='Under Milled' 'Well Milled' 'Over Milled'"`
	AverageGrainLength *float64 `json:"averageGrainLength" validate:"required,gte=0"`
}

func (h *Handler) SavePhysicalParameter(c *fiber.Ctx) error {
	var req phyParamRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	param := models.PhyInspectionParam{
		Broken:             *req.Broken,
		Purity:             *req.Purity,
		YellowKernel:       *req.YellowKernel,
		DamageKernel:       *req.DamageKernel,
		RedKernel:          *req.RedKernel,
		PaddyKernel:        *req.PaddyKernel,
		ChalkyRice:         *req.ChalkyRice,
		LiveInsects:        *req.LiveInsects,
		MillingDegree:      req.MillingDegree,
		AverageGrainLength: *req.AverageGrainLength,
	}
	if err := h.db(c).Create(&param).Error; err != nil {
		return apperrors.Internal("failed to save physical inspection parameter", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Physical inspection parameters saved successfully!",
		"data":    param,
	})
}

func (h *Handler) GetPhysicalParameters(c *fiber.Ctx) error {
	limit, offset := page(c)
	var params []models.PhyInspectionParam
	if err := h.db(c).Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&params).Error; err != nil {
		return apperrors.Internal("failed to list physical inspection parameters", err)
	}
	return c.JSON(fiber.Map{
		"message": "Physical inspection parameters retrieved successfully!",
		"data":    params,
	})
}

func (h *Handler) GetPhysicalParameter(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var param models.PhyInspectionParam
	if err := h.findByID(c, &param, id, phyParamNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Physical inspection parameter retrieved successfully!",
		"data":    param,
	})
}
