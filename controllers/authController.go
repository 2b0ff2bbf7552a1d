package controllers

import (
	"inspection-backend/apperrors"
	"inspection-backend/database"
	"inspection-backend/middlewares"
	"inspection-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid credentials."

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
}

func (h *Handler) sessionResponse(message string, user *models.User) (fiber.Map, error) {
	token, err := h.Auth.GenerateToken(user.Id, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token", err)
	}
	return fiber.Map{
		"message":   message,
		"token":     token,
		"userId":    user.Id,
		"email":     user.Email,
		"role":      user.Role,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	}, nil
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db(c).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return apperrors.Unauthorized(invalidCredentials)
		}
		return apperrors.Internal("failed to load user", err)
	}
	if err := user.ComparePassword(req.Password); err != nil {
		return apperrors.Unauthorized(invalidCredentials)
	}

	body, err := h.sessionResponse("Login successful!", &user)
	if err != nil {
		return err
	}
	return c.JSON(body)
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	user := models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleCustomer,
	}
	if err := user.SetPassword(req.Password, h.Cfg.BcryptCost); err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	err := database.WithTx(c.UserContext(), h.DB, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.User{}, uniqueCheck{"email", user.Email, "Email already registered."}); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return storeError(err, "Email already registered.", "failed to register user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	body, err := h.sessionResponse("User registered successfully!", &user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

// Me echoes the identity carried by the bearer token.
func (h *Handler) Me(c *fiber.Ctx) error {
	claims := middlewares.CurrentClaims(c)
	if claims == nil {
		return apperrors.Unauthorized("No token, authorization denied.")
	}
	return c.JSON(fiber.Map{
		"message": "Authenticated.",
		"user": fiber.Map{
			"userId": claims.UserID,
			"email":  claims.Email,
			"role":   claims.Role,
		},
	})
}
