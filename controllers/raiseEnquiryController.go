package controllers

import (
	"inspection-backend/middlewares"
	"inspection-backend/services"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) RaiseEnquiry(c *fiber.Ctx) error {
	var in services.EnquiryInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	in.Normalize()
	if err := middlewares.ValidateStruct(&in); err != nil {
		return err
	}

	enquiry, err := h.Enquiries.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Enquiry created successfully!",
		"enquiry": enquiry,
	})
}

func (h *Handler) GetEnquiries(c *fiber.Ctx) error {
	limit, offset := page(c)
	enquiries, err := h.Enquiries.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Enquiries retrieved successfully!",
		"data":    enquiries,
	})
}

func (h *Handler) GetEnquiry(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	enquiry, err := h.Enquiries.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Enquiry retrieved successfully!",
		"enquiry": enquiry,
	})
}
