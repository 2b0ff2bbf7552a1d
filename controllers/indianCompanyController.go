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
	indianCompanyNotFound   = "Indian company not found."
	indianCompanyEmailTaken = "A company with this email address already exists."
)

type createIndianCompanyRequest struct {
	CompanyName        string                      `json:"companyName" validate:"required,notblank,max=255"`
	OfficeNumber       *string                     `json:"officeNumber" validate:"omitempty,max=50"`
	RegisteredAddress  *string                     `json:"registeredAddress"`
	DocumentPaths      datatypes.JSONSlice[string] `json:"documentPaths" validate:"omitempty,dive,notblank"`
	Password           string                      `json:"password" validate:"required,min=6,max=72"`
	BankAccountNumber  *string                     `json:"bankAccountNumber" validate:"omitempty,max=50"`
	BankName           *string                     `json:"bankName" validate:"omitempty,max=255"`
	IfscCode           *string                     `json:"ifscCode" validate:"omitempty,max=20"`
	RepresentativeName *string                     `json:"representativeName" validate:"omitempty,max=255"`
	ContactNumber      *string                     `json:"contactNumber" validate:"omitempty,max=50"`
	EmailAddress       string                      `json:"emailAddress" validate:"required,email,max=255"`
	GovernmentIdPaths  datatypes.JSONSlice[string] `json:"governmentIdPaths" validate:"omitempty,dive,notblank"`
}

type updateIndianCompanyRequest struct {
	CompanyName        *string                      `json:"companyName" validate:"omitempty,notblank,max=255"`
	OfficeNumber       *string                      `json:"officeNumber" validate:"omitempty,max=50"`
	RegisteredAddress  *string                      `json:"registeredAddress"`
	DocumentPaths      *datatypes.JSONSlice[string] `json:"documentPaths" validate:"omitempty,dive,notblank"`
	Password           *string                      `json:"password" validate:"omitempty,min=6,max=72" patch:"-"`
	BankAccountNumber  *string                      `json:"bankAccountNumber" validate:"omitempty,max=50"`
	BankName           *string                      `json:"bankName" validate:"omitempty,max=255"`
	IfscCode           *string                      `json:"ifscCode" validate:"omitempty,max=20"`
	RepresentativeName *string                      `json:"representativeName" validate:"omitempty,max=255"`
	ContactNumber      *string                      `json:"contactNumber" validate:"omitempty,max=50"`
	EmailAddress       *string                      `json:"emailAddress" validate:"omitempty,email,max=255"`
	GovernmentIdPaths  *datatypes.JSONSlice[string] `json:"governmentIdPaths" validate:"omitempty,dive,notblank"`
}

type companyLoginRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// orEmpty keeps array columns as [] rather than null.
func orEmpty(s datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	if s == nil {
		return datatypes.JSONSlice[string]{}
	}
	return s
}

func (h *Handler) CreateIndianCompany(c *fiber.Ctx) error {
	var req createIndianCompanyRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	company := models.IndianCompany{
		CompanyName:        req.CompanyName,
		OfficeNumber:       utils.EmptyToNil(req.OfficeNumber),
		RegisteredAddress:  utils.EmptyToNil(req.RegisteredAddress),
		DocumentPaths:      orEmpty(req.DocumentPaths),
		BankAccountNumber:  utils.EmptyToNil(req.BankAccountNumber),
		BankName:           utils.EmptyToNil(req.BankName),
		IfscCode:           utils.EmptyToNil(req.IfscCode),
		RepresentativeName: utils.EmptyToNil(req.RepresentativeName),
		ContactNumber:      utils.EmptyToNil(req.ContactNumber),
		EmailAddress:       req.EmailAddress,
		GovernmentIdPaths:  orEmpty(req.GovernmentIdPaths),
	}
	hashed, err := models.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	company.Password = hashed

	err = database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.IndianCompany{},
			uniqueCheck{"email_address", company.EmailAddress, indianCompanyEmailTaken},
		); err != nil {
			return err
		}
		if err := tx.Create(&company).Error; err != nil {
			return storeError(err, indianCompanyEmailTaken, "failed to register company")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Indian company registered successfully!",
		"company": company,
	})
}

// LoginIndianCompany checks company credentials and issues a company-scoped token.
func (h *Handler) LoginIndianCompany(c *fiber.Ctx) error {
	var req companyLoginRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	var company models.IndianCompany
	if err := h.db(c).Where("email_address = ?", req.EmailAddress).First(&company).Error; err != nil {
		if database.IsNotFound(err) {
			return apperrors.Unauthorized(invalidCredentials)
		}
		return apperrors.Internal("failed to load company", err)
	}
	if err := company.ComparePassword(req.Password); err != nil {
		return apperrors.Unauthorized(invalidCredentials)
	}

	token, err := h.Auth.GenerateToken(company.Id, company.EmailAddress, models.RoleIndianCompany)
	if err != nil {
		return apperrors.Internal("failed to sign token", err)
	}
	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"token":   token,
		"company": company,
	})
}

func (h *Handler) GetIndianCompanies(c *fiber.Ctx) error {
	limit, offset := page(c)
	var companies []models.IndianCompany
	if err := h.db(c).Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&companies).Error; err != nil {
		return apperrors.Internal("failed to list companies", err)
	}
	return c.JSON(fiber.Map{
		"message": "Indian companies retrieved successfully!",
		"data":    companies,
	})
}

func (h *Handler) GetIndianCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var company models.IndianCompany
	if err := h.findByID(c, &company, id, indianCompanyNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Indian company retrieved successfully!",
		"data":    company,
	})
}

func (h *Handler) UpdateIndianCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateIndianCompanyRequest
	updates, err := h.patchFromBody(c, &req, func() *string { return req.Password })
	if err != nil {
		return err
	}

	var company models.IndianCompany
	if err := h.updateByID(c, &company, id, updates, indianCompanyNotFound, indianCompanyEmailTaken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Indian company updated successfully!",
		"data":    company,
	})
}

func (h *Handler) DeleteIndianCompany(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.IndianCompany{}, id, indianCompanyNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Indian company deleted successfully."})
}
