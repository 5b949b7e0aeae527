package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/policy"
)

// PagesHandler serves the page-level routes. Rendering itself belongs to the
// front end; these handlers decide access and hand over the page data.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Index handles GET /: the public landing page.
func (h *PagesHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "index", "airports": domain.Airports})
}

// PassengerServices handles GET /passenger: public passenger area.
func (h *PagesHandler) PassengerServices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "passenger_services", "airports": domain.Airports})
}

// Dashboard handles GET /dashboard/:airport_code. Access and airport scoping
// come from the policy table; the response carries the widget set and alert
// scopes the client may render.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	airportCode := c.Params("airport_code")
	id := identityOrNil(c)

	if decision := policy.DashboardAccess(id, airportCode); decision.Denied() {
		return redirectDenied(c, decision)
	}

	airport, ok := domain.Airports[airportCode]
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Airport not found"})
	}

	return c.JSON(fiber.Map{
		"page":            "dashboard",
		"airport":         airport,
		"airport_code":    airportCode,
		"allowed_widgets": policy.WidgetsFor(*id),
		"alert_scopes":    policy.AlertScopesFor(*id),
		"work_assignment": id.WorkAssignment,
		"user_role":       id.Role,
	})
}

// Portal handles GET /portal/:role.
func (h *PagesHandler) Portal(c *fiber.Ctx) error {
	id := identityOrNil(c)
	decision, err := policy.PortalAccess(id, c.Params("role"))
	if err != nil {
		return err
	}
	if decision.Denied() {
		return redirectDenied(c, decision)
	}
	return c.JSON(fiber.Map{"page": "portal", "role": id.Role, "airports": domain.Airports})
}

// StaffPortal handles GET /staff.
func (h *PagesHandler) StaffPortal(c *fiber.Ctx) error {
	if decision := policy.StaffArea(identityOrNil(c), c.Path()); decision.Denied() {
		return redirectDenied(c, decision)
	}
	return c.JSON(fiber.Map{"page": "staff_portal", "airports": domain.Airports})
}

// Settings handles GET /settings.
func (h *PagesHandler) Settings(c *fiber.Ctx) error {
	if decision := policy.StaffArea(identityOrNil(c), c.Path()); decision.Denied() {
		return redirectDenied(c, decision)
	}
	return c.JSON(fiber.Map{"page": "settings", "airports": domain.Airports})
}

// GateManagement handles GET /staff/gate-management: gate staff see their
// own airport's gate operations page; managers and admins may pick one.
func (h *PagesHandler) GateManagement(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if decision := policy.StaffArea(id, c.Path()); decision.Denied() {
		return redirectDenied(c, decision)
	}

	if id.Role == domain.RoleStaff {
		if id.WorkAssignment != string(domain.AssignmentGates) {
			return redirectDenied(c, policy.Decision{
				Redirect: "/portal/" + string(id.Role),
				Reason:   "Gate management is only available to gate staff.",
			})
		}
		if id.AirportCode == "" {
			return redirectDenied(c, policy.Decision{
				Redirect: "/portal/" + string(id.Role),
				Reason:   "You must be assigned to an airport to view gate operations.",
			})
		}
	}

	airportCode := id.AirportCode
	if id.Role == domain.RoleAdmin {
		airportCode = c.Query("airport", "DEL")
	}
	if !domain.KnownAirport(airportCode) {
		airportCode = "DEL"
	}

	return c.JSON(fiber.Map{
		"page":         "gate_management",
		"airport":      domain.Airports[airportCode],
		"airport_code": airportCode,
	})
}

// redirectDenied sends the UI-facing denial: a redirect carrying the
// user-visible reason.
func redirectDenied(c *fiber.Ctx, decision policy.Decision) error {
	target := decision.Redirect
	if target == "" {
		target = "/"
	}
	return c.Redirect(target, http.StatusFound)
}
