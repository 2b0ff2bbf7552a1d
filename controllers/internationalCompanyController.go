package controllers

import (
	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"
	"inspection-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	intlCompanyNotFound   = "International company not found."
	intlCompanyEmailTaken = "An international company with this email address already exists."
)

type createInternationalCompanyRequest struct {
	CompanyName       string                      `json:"companyName" validate:"required,notblank,max=255"`
	EmailAddress      string                      `json:"emailAddress" validate:"required,email,max=255"`
	OfficeNumber      *string                     `json:"officeNumber" validate:"omitempty,max=50"`
	RegisteredAddress *string                     `json:"registeredAddress"`
	DocumentUrls      datatypes.JSONSlice[string] `json:"documentUrls" validate:"omitempty,dive,notblank"`
	CertificatePaths  datatypes.JSONSlice[string] `json:"certificatePaths" validate:"omitempty,dive,notblank"`
	Password          string                      `json:"password" validate:"required,min=6,max=72"`
	BankAccountNumber *string                     `json:"bankAccountNumber" validate:"omitempty,max=255"`
	BankName          *string                     `json:"bankName" validate:"omitempty,max=255"`
	IfscCode          *string                     `json:"ifscCode" validate:"omitempty,max=50"`
	SwiftCode         *string                     `json:"swiftCode" validate:"omitempty,max=50"`
	GovernmentIdPath  *string                     `json:"governmentIdPath" validate:"omitempty,max=500"`
}

type updateInternationalCompanyRequest struct {
	CompanyName       *string                      `json:"companyName" validate:"omitempty,notblank,max=255"`
	EmailAddress      *string                      `json:"emailAddress" validate:"omitempty,email,max=255"`
	OfficeNumber      *string                      `json:"officeNumber" validate:"omitempty,max=50"`
	RegisteredAddress *string                      `json:"registeredAddress"`
	DocumentUrls      *datatypes.JSONSlice[string] `json:"documentUrls" validate:"omitempty,dive,notblank"`
	CertificatePaths  *datatypes.JSONSlice[string] `json:"certificatePaths" validate:"omitempty,dive,notblank"`
	Password          *string                      `json:"password" validate:"omitempty,min=6,max=72" patch:"-"`
	BankAccountNumber *string                      `json:"bankAccountNumber" validate:"omitempty,max=255"`
	BankName          *string                      `json:"bankName" validate:"omitempty,max=255"`
	IfscCode          *string                      `json:"ifscCode" validate:"omitempty,max=50"`
	SwiftCode         *string                      `json:"swiftCode" validate:"omitempty,max=50"`
	GovernmentIdPath  *string                      `json:"governmentIdPath" validate:"omitempty,max=500"`
}

func (h *Handler) CreateInternationalCompany(c *fiber.Ctx) error {
	var req createInternationalCompanyRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	company := models.InternationalCompany{
		CompanyName:       req.CompanyName,
		EmailAddress:      req.EmailAddress,
		OfficeNumber:      utils.EmptyToNil(req.OfficeNumber),
		RegisteredAddress: utils.EmptyToNil(req.RegisteredAddress),
		DocumentUrls:      orEmpty(req.DocumentUrls),
		CertificatePaths:  orEmpty(req.CertificatePaths),
		BankAccountNumber: utils.EmptyToNil(req.BankAccountNumber),
		BankName:          utils.EmptyToNil(req.BankName),
		IfscCode:          utils.EmptyToNil(req.IfscCode),
		SwiftCode:         utils.EmptyToNil(req.SwiftCode),
		GovernmentIdPath:  utils.EmptyToNil(req.GovernmentIdPath),
	}
	hashed, err := models.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	company.Password = hashed

	err = database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.InternationalCompany{},
			uniqueCheck{"email_address", company.EmailAddress, intlCompanyEmailTaken},
		); err != nil {
			return err
		}
		if err := tx.Create(&company).Error; err != nil {
			return storeError(err, intlCompanyEmailTaken, "failed to register company")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "International company registered successfully!",
		"company": company,
	})
}

func (h *Handler) GetInternationalCompanies(c *fiber.Ctx) error {
	limit, offset := page(c)
	var companies []models.InternationalCompany
	if err := h.db(c).Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&companies).Error; err != nil {
		return apperrors.Internal("failed to list companies", err)
	}
	return c.JSON(fiber.Map{
		"message": "International companies retrieved successfully!",
		"data":    companies,
	})
}

func (h *Handler) GetInternationalCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var company models.InternationalCompany
	if err := h.findByID(c, &company, id, intlCompanyNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "International company retrieved successfully!",
		"data":    company,
	})
}

func (h *Handler) UpdateInternationalCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateInternationalCompanyRequest
	updates, err := h.patchFromBody(c, &req, func() *string { return req.Password })
	if err != nil {
		return err
	}

	var company models.InternationalCompany
	if err := h.updateByID(c, &company, id, updates, intlCompanyNotFound, intlCompanyEmailTaken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "International company updated successfully!",
		"data":    company,
	})
}

func (h *Handler) DeleteInternationalCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.InternationalCompany{}, id, intlCompanyNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "International company deleted successfully."})
}
