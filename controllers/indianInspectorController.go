package controllers

import (
	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"
	"inspection-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	indianInspectorNotFound   = "Indian inspector not found."
	indianInspectorEmailTaken = "Inspector with this email already exists."
)

type createIndianInspectorRequest struct {
	Name              string  `json:"name" validate:"required,notblank,max=255"`
	MobileNumber      string  `json:"mobileNumber" validate:"required,max=20"`
	EmailId           string  `json:"emailId" validate:"required,email,max=255"`
	Password          string  `json:"password" validate:"required,min=6,max=72"`
	Address           string  `json:"address" validate:"required,notblank"`
	CommodityName     string  `json:"commodityName" validate:"required,notblank,max=255"`
	Experience        string  `json:"experience" validate:"required,notblank,max=100"`
	AadharCardUrl     *string `json:"aadharCardUrl" validate:"omitempty,max=500"`
	BankAccountNumber string  `json:"bankAccountNumber" validate:"required,max=50"`
	BankName          string  `json:"bankName" validate:"required,max=255"`
	IfscCode          string  `json:"ifscCode" validate:"required,max=20"`
	CountryCode       string  `json:"countryCode" validate:"omitempty,max=10"`
	UserId            *string `json:"userId" validate:"omitempty,max=255"`
}

type updateIndianInspectorRequest struct {
	Name              *string `json:"name" validate:"omitempty,notblank,max=255"`
	MobileNumber      *string `json:"mobileNumber" validate:"omitempty,max=20"`
	EmailId           *string `json:"emailId" validate:"omitempty,email,max=255"`
	Password          *string `json:"password" validate:"omitempty,min=6,max=72" patch:"-"`
	Address           *string `json:"address" validate:"omitempty,notblank"`
	CommodityName     *string `json:"commodityName" validate:"omitempty,notblank,max=255"`
	Experience        *string `json:"experience" validate:"omitempty,notblank,max=100"`
	AadharCardUrl     *string `json:"aadharCardUrl" validate:"omitempty,max=500"`
	BankAccountNumber *string `json:"bankAccountNumber" validate:"omitempty,max=50"`
	BankName          *string `json:"bankName" validate:"omitempty,max=255"`
	IfscCode          *string `json:"ifscCode" validate:"omitempty,max=20"`
	CountryCode       *string `json:"countryCode" validate:"omitempty,max=10"`
	UserId            *string `json:"userId" validate:"omitempty,max=255"`
}

func (h *Handler) CreateIndianInspector(c *fiber.Ctx) error {
	var req createIndianInspectorRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	inspector := models.IndianInspector{
		Name:              req.Name,
		MobileNumber:      req.MobileNumber,
		EmailId:           req.EmailId,
		Address:           req.Address,
		CommodityName:     req.CommodityName,
		Experience:        req.Experience,
		AadharCardUrl:     utils.EmptyToNil(req.AadharCardUrl),
		BankAccountNumber: req.BankAccountNumber,
		BankName:          req.BankName,
		IfscCode:          req.IfscCode,
		CountryCode:       req.CountryCode,
		UserId:            utils.EmptyToNil(req.UserId),
	}
	hashed, err := models.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	inspector.Password = hashed

	err = database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.IndianInspector{},
			uniqueCheck{"email_id", inspector.EmailId, indianInspectorEmailTaken},
		); err != nil {
			return err
		}
		if err := tx.Create(&inspector).Error; err != nil {
			return storeError(err, indianInspectorEmailTaken, "failed to create inspector")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Indian inspector registered successfully!",
		"inspector": inspector,
	})
}

func (h *Handler) GetIndianInspectors(c *fiber.Ctx) error {
	limit, offset := page(c)
	var inspectors []models.IndianInspector
	if err := h.db(c).Order("name ASC").Order("id ASC").
		Limit(limit).Offset(offset).Find(&inspectors).Error; err != nil {
		return apperrors.Internal("failed to list inspectors", err)
	}
	return c.JSON(fiber.Map{
		"message": "Indian inspectors retrieved successfully!",
		"data":    inspectors,
	})
}

func (h *Handler) GetIndianInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var inspector models.IndianInspector
	if err := h.findByID(c, &inspector, id, indianInspectorNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Indian inspector retrieved successfully!",
		"data":    inspector,
	})
}

func (h *Handler) UpdateIndianInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateIndianInspectorRequest
	updates, err := h.patchFromBody(c, &req, func() *string { return req.Password })
	if err != nil {
		return err
	}

	var inspector models.IndianInspector
	if err := h.updateByID(c, &inspector, id, updates, indianInspectorNotFound, indianInspectorEmailTaken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Indian inspector updated successfully!",
		"data":    inspector,
	})
}

func (h *Handler) DeleteIndianInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.IndianInspector{}, id, indianInspectorNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Indian inspector deleted successfully."})
}
