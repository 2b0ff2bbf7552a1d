package controllers

import (
	"errors"
	"strconv"

	"inspection-backend/apperrors"
	"inspection-backend/config"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"
	"inspection-backend/services"
	"inspection-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxPageSize = 500

// Handler carries the dependencies shared by every controller.
type Handler struct {
	DB        *gorm.DB
	Cfg       config.Config
	Auth      *middlewares.Authenticator
	Enquiries *services.EnquiryService
}

func New(db *gorm.DB, cfg config.Config, auth *middlewares.Authenticator) *Handler {
	return &Handler{
		DB:        db,
		Cfg:       cfg,
		Auth:      auth,
		Enquiries: services.NewEnquiryService(db),
	}
}

func (h *Handler) db(c *fiber.Ctx) *gorm.DB {
	return h.DB.WithContext(c.UserContext())
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid id.")
	}
	return uint(id), nil
}

// page reads ?limit=&offset=; no limit means every row.
func page(c *fiber.Ctx) (limit, offset int) {
	limit = utils.ParseIntDefault(c.Query("limit"), 0)
	if limit == 0 {
		limit = -1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, utils.ParseIntDefault(c.Query("offset"), 0)
}

// uniqueCheck is one column that must not already hold value.
type uniqueCheck struct {
	column  string
	value   string
	message string
}

func ensureUnique(tx *gorm.DB, model any, checks ...uniqueCheck) error {
	for _, chk := range checks {
		var n int64
		if err := tx.Model(model).Where(chk.column+" = ?", chk.value).Count(&n).Error; err != nil {
			return apperrors.Internal("uniqueness check failed", err)
		}
		if n > 0 {
			return apperrors.Conflict(chk.message)
		}
	}
	return nil
}

// storeError maps a failed write: unique violations become conflicts.
func storeError(err error, conflictMsg, internalMsg string) error {
	if database.IsUniqueViolation(err) {
		return apperrors.Conflict(conflictMsg)
	}
	return apperrors.Internal(internalMsg, err)
}

// patchFromBody binds a pointer DTO and returns the columns it sets. password
// is hashed with the configured cost when present.
func (h *Handler) patchFromBody(c *fiber.Ctx, dto any, password func() *string) (map[string]any, error) {
	if err := middlewares.BindAndValidate(c, dto); err != nil {
		return nil, err
	}
	updates := utils.UpdatesFromPtrDTO(dto)
	if password != nil {
		if pw := password(); pw != nil {
			hashed, err := models.HashPassword(*pw, h.Cfg.BcryptCost)
			if err != nil {
				return nil, apperrors.Internal("failed to hash password", err)
			}
			updates["password"] = hashed
		}
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields provided for update.")
	}
	return updates, nil
}

// updateByID applies updates to the row id of dst's table and reloads it into dst.
func (h *Handler) updateByID(c *fiber.Ctx, dst any, id uint, updates map[string]any, notFound, conflict string) error {
	return database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := tx.First(dst, id).Error; err != nil {
			if database.IsNotFound(err) {
				return apperrors.NotFound(notFound)
			}
			return apperrors.Internal("failed to load record", err)
		}
		if err := tx.Model(dst).Updates(updates).Error; err != nil {
			return storeError(err, conflict, "failed to update record")
		}
		return tx.First(dst, id).Error
	})
}

func (h *Handler) deleteByID(c *fiber.Ctx, model any, id uint, notFound string) error {
	res := h.db(c).Delete(model, id)
	if res.Error != nil {
		return apperrors.Internal("failed to delete record", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(notFound)
	}
	return nil
}

func (h *Handler) findByID(c *fiber.Ctx, dst any, id uint, notFound string) error {
	if err := h.db(c).First(dst, id).Error; err != nil {
		if database.IsNotFound(err) {
			return apperrors.NotFound(notFound)
		}
		return apperrors.Internal("failed to load record", err)
	}
	return nil
}

// validationDetails flattens a validator error for an itemized 400.
func validationDetails(err error) any {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return middlewares.FieldErrors(ve)
	}
	return nil
}
