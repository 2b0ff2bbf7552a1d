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
	customerNotFound     = "Customer not found."
	customerEmailTaken   = "Customer with this email address already exists."
	customerMobileTaken  = "Customer with this mobile number already exists."
	customerContactTaken = "Email address or mobile number already exists."
)

type createCustomerRequest struct {
	CountryCode                         string  `json:"country_code" validate:"required,max=3"`
	FullName                            string  `json:"full_name" validate:"required,notblank,max=255"`
	EmailAddress                        string  `json:"email_address" validate:"required,email,max=255"`
	MobileNumber                        string  `json:"mobile_number" validate:"required,max=20"`
	Password                            string  `json:"password" validate:"required,min=6,max=72"`
	TradeLicenseOrLegalDocumentPhotoUrl *string `json:"trade_license_or_legal_document_photo_url" validate:"omitempty,url"`
	CertificatePhotoUrl                 *string `json:"certificate_photo_url" validate:"omitempty,url"`
}

type updateCustomerRequest struct {
	CountryCode                         *string `json:"country_code" validate:"omitempty,max=3"`
	FullName                            *string `json:"full_name" validate:"omitempty,notblank,max=255"`
	EmailAddress                        *string `json:"email_address" validate:"omitempty,email,max=255"`
	MobileNumber                        *string `json:"mobile_number" validate:"omitempty,max=20"`
	Password                            *string `json:"password" validate:"omitempty,min=6,max=72" patch:"-"`
	TradeLicenseOrLegalDocumentPhotoUrl *string `json:"trade_license_or_legal_document_photo_url" validate:"omitempty,url"`
	CertificatePhotoUrl                 *string `json:"certificate_photo_url" validate:"omitempty,url"`
}

func (h *Handler) CreateCustomer(c *fiber.Ctx) error {
	var req createCustomerRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	customer := models.Customer{
		CountryCode:                         req.CountryCode,
		FullName:                            req.FullName,
		EmailAddress:                        req.EmailAddress,
		MobileNumber:                        req.MobileNumber,
		TradeLicenseOrLegalDocumentPhotoUrl: utils.EmptyToNil(req.TradeLicenseOrLegalDocumentPhotoUrl),
		CertificatePhotoUrl:                 utils.EmptyToNil(req.CertificatePhotoUrl),
	}
	hashed, err := models.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	customer.Password = hashed

	err = database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.Customer{},
			uniqueCheck{"email_address", customer.EmailAddress, customerEmailTaken},
			uniqueCheck{"mobile_number", customer.MobileNumber, customerMobileTaken},
		); err != nil {
			return err
		}
		if err := tx.Create(&customer).Error; err != nil {
			return storeError(err, customerContactTaken, "failed to create customer")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Customer created successfully!",
		"customer": customer,
	})
}

func (h *Handler) GetCustomers(c *fiber.Ctx) error {
	limit, offset := page(c)
	var customers []models.Customer
	if err := h.db(c).Order("created_at DESC").Order("customer_id DESC").
		Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		return apperrors.Internal("failed to list customers", err)
	}
	return c.JSON(fiber.Map{
		"message":   "Customers retrieved successfully!",
		"customers": customers,
	})
}

func (h *Handler) GetCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var customer models.Customer
	if err := h.findByID(c, &customer, id, customerNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Customer retrieved successfully!",
		"customer": customer,
	})
}

func (h *Handler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateCustomerRequest
	updates, err := h.patchFromBody(c, &req, func() *string { return req.Password })
	if err != nil {
		return err
	}

	var customer models.Customer
	if err := h.updateByID(c, &customer, id, updates, customerNotFound, customerContactTaken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Customer updated successfully!",
		"customer": customer,
	})
}

func (h *Handler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.Customer{}, id, customerNotFound); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
