package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"inspection-backend/controllers"
	"inspection-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, h *controllers.Handler, db *gorm.DB, metrics *middlewares.Metrics) {
	app.Get("/health", health(db))
	if metrics != nil {
		app.Get("/metrics", metrics.Handler())
	}

	api := app.Group("/v1/api")

	// Bearer auth, then the idempotency guard so the caller is part of the request hash
	auth := h.Auth.RequireAuth()
	idem := middlewares.Idempotency(db)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", idem, h.Register)
	authGroup.Get("/me", auth, h.Me)

	// Parties: registration is public, everything else needs a token
	customers := api.Group("/customers")
	customers.Post("/", idem, h.CreateCustomer)
	customers.Post("/register", idem, h.CreateCustomer)
	customers.Get("/", auth, h.GetCustomers)
	customers.Get("/:id", auth, h.GetCustomer)
	customers.Put("/:id", auth, idem, h.UpdateCustomer)
	customers.Delete("/:id", auth, idem, h.DeleteCustomer)

	indianInspectors := api.Group("/indianinspector")
	indianInspectors.Post("/", idem, h.CreateIndianInspector)
	indianInspectors.Post("/register", idem, h.CreateIndianInspector)
	indianInspectors.Get("/", auth, h.GetIndianInspectors)
	indianInspectors.Get("/:id", auth, h.GetIndianInspector)
	indianInspectors.Put("/:id", auth, idem, h.UpdateIndianInspector)
	indianInspectors.Delete("/:id", auth, idem, h.DeleteIndianInspector)

	intlInspectors := api.Group("/internationalinspector")
	intlInspectors.Post("/", idem, h.CreateInternationalInspector)
	intlInspectors.Post("/register", idem, h.CreateInternationalInspector)
	intlInspectors.Get("/", auth, h.GetInternationalInspectors)
	intlInspectors.Get("/:id", auth, h.GetInternationalInspector)
	intlInspectors.Put("/:id", auth, idem, h.UpdateInternationalInspector)
	intlInspectors.Delete("/:id", auth, idem, h.DeleteInternationalInspector)

	indianCompanies := api.Group("/indiancompany")
	indianCompanies.Post("/", idem, h.CreateIndianCompany)
	indianCompanies.Post("/register", idem, h.CreateIndianCompany)
	indianCompanies.Post("/login", h.LoginIndianCompany)
	indianCompanies.Get("/", auth, h.GetIndianCompanies)
	indianCompanies.Get("/:id", auth, h.GetIndianCompany)
	indianCompanies.Put("/:id", auth, idem, h.UpdateIndianCompany)
	indianCompanies.Delete("/:id", auth, idem, h.DeleteIndianCompany)

	intlCompanies := api.Group("/internationalcompany")
	intlCompanies.Post("/", idem, h.CreateInternationalCompany)
	intlCompanies.Post("/register", idem, h.CreateInternationalCompany)
	intlCompanies.Get("/", auth, h.GetInternationalCompanies)
	intlCompanies.Get("/:id", auth, h.GetInternationalCompany)
	intlCompanies.Put("/:id", auth, idem, h.UpdateInternationalCompany)
	intlCompanies.Delete("/:id", auth, idem, h.DeleteInternationalCompany)

	// Parameter catalogs: reads are public
	physical := api.Group("/physical-parameter")
	physical.Get("/", h.GetPhysicalParameters)
	physical.Get("/:id", h.GetPhysicalParameter)
	physical.Post("/", auth, idem, h.SavePhysicalParameter)
	physical.Post("/save", auth, idem, h.SavePhysicalParameter)

	chemical := api.Group("/chemical-parameter")
	chemical.Get("/", h.GetChemicalParameters)
	chemical.Get("/:id", h.GetChemicalParameter)
	chemical.Post("/", auth, idem, h.SaveChemicalParameters) // batch create
	chemical.Post("/save", auth, idem, h.SaveChemicalParameters)
	chemical.Put("/:id", auth, idem, h.UpdateChemicalParameter)
	chemical.Delete("/:id", auth, idem, h.DeleteChemicalParameter)

	// Enquiries
	enquiries := api.Group("/raiseenquiry", auth)
	enquiries.Post("/", idem, h.RaiseEnquiry)
	enquiries.Post("/inquiries", idem, h.RaiseEnquiry)
	enquiries.Get("/", h.GetEnquiries)
	enquiries.Get("/:id", h.GetEnquiry)

	app.Use(middlewares.NotFound)
}

func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
