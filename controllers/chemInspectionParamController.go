package controllers

import (
	"errors"
	"fmt"
	"strings"

	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"
	"inspection-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	chemParamNotFound = "Chemical inspection parameter not found."
	chemParamConflict = "A chemical parameter with this name already exists."
)

type chemParamRequest struct {
	ParameterName string   `json:"parameter_name" validate:"required,notblank,max=255"`
	MinValue      *float64 `json:"min_value"`
	MaxValue      *float64 `json:"max_value"`
	Unit          *string  `json:"unit" validate:"omitempty,max=50"`
}

type updateChemParamRequest struct {
	ParameterName *string  `json:"parameter_name" validate:"omitempty,notblank,max=255"`
	MinValue      *float64 `json:"min_value"`
	MaxValue      *float64 `json:"max_value"`
	Unit          *string  `json:"unit" validate:"omitempty,max=50"`
}

func checkRange(lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		return errors.New("min_value cannot be greater than max_value")
	}
	return nil
}

// SaveChemicalParameters validates the whole batch before inserting any of it.
func (h *Handler) SaveChemicalParameters(c *fiber.Ctx) error {
	var items []chemParamRequest
	if err := c.BodyParser(&items); err != nil || len(items) == 0 {
		return apperrors.Validation("Request body must be a non-empty array of chemical parameters.")
	}

	rows := make([]models.ChemInspectionParam, 0, len(items))
	seen := make(map[string]int, len(items))
	for i := range items {
		item := &items[i]
		utils.NormalizeDTO(item)
		if err := middlewares.ValidateStruct(item); err != nil {
			return apperrors.ValidationWithDetails(
				fmt.Sprintf("Invalid chemical parameter at index %d.", i),
				validationDetails(err))
		}
		if err := checkRange(item.MinValue, item.MaxValue); err != nil {
			return apperrors.Validation(fmt.Sprintf("Invalid chemical parameter at index %d: %s.", i, err))
		}
		key := strings.ToLower(item.ParameterName)
		if j, dup := seen[key]; dup {
			return apperrors.Conflict(fmt.Sprintf("Duplicate parameter_name '%s' at index %d and %d.", item.ParameterName, j, i))
		}
		seen[key] = i
		rows = append(rows, models.ChemInspectionParam{
			ParameterName: item.ParameterName,
			MinValue:      item.MinValue,
			MaxValue:      item.MaxValue,
			Unit:          utils.EmptyToNil(item.Unit),
		})
	}

	err := database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		names := make([]string, 0, len(rows))
		for _, r := range rows {
			names = append(names, r.ParameterName)
		}
		var existing models.ChemInspectionParam
		err := tx.Where("parameter_name IN ?", names).Take(&existing).Error
		if err == nil {
			return apperrors.Conflict(fmt.Sprintf("Chemical parameter '%s' already exists.", existing.ParameterName))
		}
		if !database.IsNotFound(err) {
			return apperrors.Internal("failed to check chemical parameters", err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return storeError(err, chemParamConflict, "failed to save chemical parameters")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Chemical parameters saved successfully!",
		"data":    rows,
	})
}

func (h *Handler) GetChemicalParameters(c *fiber.Ctx) error {
	var params []models.ChemInspectionParam
	if err := h.db(c).Order("parameter_name ASC").Find(&params).Error; err != nil {
		return apperrors.Internal("failed to list chemical parameters", err)
	}
	return c.JSON(fiber.Map{
		"message": "Chemical parameters retrieved successfully!",
		"data":    params,
	})
}

func (h *Handler) GetChemicalParameter(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var param models.ChemInspectionParam
	if err := h.findByID(c, &param, id, chemParamNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Chemical parameter retrieved successfully!",
		"data":    param,
	})
}

func (h *Handler) UpdateChemicalParameter(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateChemParamRequest
	updates, err := h.patchFromBody(c, &req, nil)
	if err != nil {
		return err
	}
	if err := checkRange(req.MinValue, req.MaxValue); err != nil {
		return apperrors.Validation(err.Error() + ".")
	}

	var param models.ChemInspectionParam
	if err := h.updateByID(c, &param, id, updates, chemParamNotFound, chemParamConflict); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Chemical parameter updated successfully!",
		"data":    param,
	})
}

func (h *Handler) DeleteChemicalParameter(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.deleteByID(c, &models.ChemInspectionParam{}, id, chemParamNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Chemical parameter deleted successfully."})
}
