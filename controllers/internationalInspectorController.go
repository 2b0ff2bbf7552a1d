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
	intlInspectorNotFound   = "International inspector not found."
	intlInspectorEmailTaken = "An international inspector with this email address already exists."
	intlInspectorCodeTaken  = "An international inspector with this inspector code already exists."
	intlInspectorConflict   = "Email address or inspector code already exists."
)

type createInternationalInspectorRequest struct {
	CountryCode                         string  `json:"countryCode" validate:"required,max=10"`
	FullName                            string  `json:"fullName" validate:"required,notblank,max=255"`
	EmailAddress                        string  `json:"emailAddress" validate:"required,email,max=255"`
	MobileNumber                        string  `json:"mobileNumber" validate:"required,max=50"`
	Password                            string  `json:"password" validate:"required,min=6,max=72"`
	Address                             *string `json:"address"`
	InternationalInspectorCode          string  `json:"internationalInspectorCode" validate:"required,notblank,max=100"`
	CommodityName                       *string `json:"commodityName" validate:"omitempty,max=255"`
	ExperienceYears                     *int    `json:"experienceYears" validate:"omitempty,gte=0,lte=80"`
	FilePaths                           *string `json:"filePaths"`
	BankAccountNumber                   *string `json:"bankAccountNumber" validate:"omitempty,max=100"`
	BankDetails                         *string `json:"bankDetails"`
	TradeLicenseOrLegalDocumentPhotoUrl *string `json:"tradeLicenseOrLegalDocumentPhotoUrl" validate:"omitempty,max=500"`
	CertificatePhotoUrl                 *string `json:"certificatePhotoUrl" validate:"omitempty,max=500"`
}

type updateInternationalInspectorRequest struct {
	CountryCode                         *string `json:"countryCode" validate:"omitempty,max=10"`
	FullName                            *string `json:"fullName" validate:"omitempty,notblank,max=255"`
	EmailAddress                        *string `json:"emailAddress" validate:"omitempty,email,max=255"`
	MobileNumber                        *string `json:"mobileNumber" validate:"omitempty,max=50"`
	Password                            *string `json:"password" validate:"omitempty,min=6,max=72" patch:"-"`
	Address                             *string `json:"address"`
	InternationalInspectorCode          *string `json:"internationalInspectorCode" validate:"omitempty,notblank,max=100"`
	CommodityName                       *string `json:"commodityName" validate:"omitempty,max=255"`
	ExperienceYears                     *int    `json:"experienceYears" validate:"omitempty,gte=0,lte=80"`
	FilePaths                           *string `json:"filePaths"`
	BankAccountNumber                   *string `json:"bankAccountNumber" validate:"omitempty,max=100"`
	BankDetails                         *string `json:"bankDetails"`
	TradeLicenseOrLegalDocumentPhotoUrl *string `json:"tradeLicenseOrLegalDocumentPhotoUrl" validate:"omitempty,max=500"`
	CertificatePhotoUrl                 *string `json:"certificatePhotoUrl" validate:"omitempty,max=500"`
}

func (h *Handler) CreateInternationalInspector(c *fiber.Ctx) error {
	var req createInternationalInspectorRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	inspector := models.InternationalInspector{
		CountryCode:                         req.CountryCode,
		FullName:                            req.FullName,
		EmailAddress:                        req.EmailAddress,
		MobileNumber:                        req.MobileNumber,
		Address:                             utils.EmptyToNil(req.Address),
		InternationalInspectorCode:          req.InternationalInspectorCode,
		CommodityName:                       utils.EmptyToNil(req.CommodityName),
		ExperienceYears:                     req.ExperienceYears,
		FilePaths:                           utils.EmptyToNil(req.FilePaths),
		BankAccountNumber:                   utils.EmptyToNil(req.BankAccountNumber),
		BankDetails:                         utils.EmptyToNil(req.BankDetails),
		TradeLicenseOrLegalDocumentPhotoUrl: utils.EmptyToNil(req.TradeLicenseOrLegalDocumentPhotoUrl),
		CertificatePhotoUrl:                 utils.EmptyToNil(req.CertificatePhotoUrl),
	}
	hashed, err := models.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	inspector.Password = hashed

	// Existence check and insert commit together or not at all.
	err = database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.InternationalInspector{},
			uniqueCheck{"email_address", inspector.EmailAddress, intlInspectorEmailTaken},
			uniqueCheck{"international_inspector_code", inspector.InternationalInspectorCode, intlInspectorCodeTaken},
		); err != nil {
			return err
		}
		if err := tx.Create(&inspector).Error; err != nil {
			return storeError(err, intlInspectorConflict, "failed to create inspector")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "International inspector registered successfully!",
		"inspector": inspector,
	})
}

func (h *Handler) GetInternationalInspectors(c *fiber.Ctx) error {
	limit, offset := page(c)
	var inspectors []models.InternationalInspector
	if err := h.db(c).Order("full_name ASC").Order("id ASC").
		Limit(limit).Offset(offset).Find(&inspectors).Error; err != nil {
		return apperrors.Internal("failed to list inspectors", err)
	}
	return c.JSON(fiber.Map{
		"message": "International inspectors retrieved successfully!",
		"data":    inspectors,
	})
}

func (h *Handler) GetInternationalInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var inspector models.InternationalInspector
	if err := h.findByID(c, &inspector, id, intlInspectorNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "International inspector retrieved successfully!",
		"data":    inspector,
	})
}

func (h *Handler) UpdateInternationalInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateInternationalInspectorRequest
	updates, err := h.patchFromBody(c, &req, func() *string { return req.Password })
	if err != nil {
		return err
	}

	var inspector models.InternationalInspector
	if err := h.updateByID(c, &inspector, id, updates, intlInspectorNotFound, intlInspectorConflict); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "International inspector updated successfully!",
		"data":    inspector,
	})
}

func (h *Handler) DeleteInternationalInspector(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.InternationalInspector{}, id, intlInspectorNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "International inspector deleted successfully."})
}
