package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/airport-dashboard/internal/datasource"
	"github.com/spec-kit/airport-dashboard/internal/policy"
	"github.com/spec-kit/airport-dashboard/internal/service"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// datasetRoutes maps the URL segment of each single-dataset endpoint onto
// its dataset key.
var datasetRoutes = map[string]string{
	"passenger-flow":       datasource.DatasetPassengerFlow,
	"queue-status":         datasource.DatasetQueueStatus,
	"baggage-tracking":     datasource.DatasetBaggageTracking,
	"flight-status":        datasource.DatasetFlightStatus,
	"security-status":      datasource.DatasetSecurityStatus,
	"resource-utilization": datasource.DatasetResourceUtilization,
	"staff-availability":   datasource.DatasetStaffAvailability,
	"weather":              datasource.DatasetWeather,
	"live-conveyors":       datasource.DatasetLiveConveyors,
	"facilities":           datasource.DatasetFacilities,
	"gate-operations":      datasource.DatasetGateOperations,
	"complaints":           datasource.DatasetComplaints,
	"ai-insights":          datasource.DatasetAIInsights,
}

// AirportDataHandler serves the aggregated dashboard payload, the
// single-dataset endpoints and the passenger utility endpoints.
type AirportDataHandler struct {
	aggregator *datasource.Aggregator
	simulator  *datasource.Simulator
	identity   *service.IdentityService
	logger     *zap.Logger
}

// NewAirportDataHandler constructs handler.
func NewAirportDataHandler(aggregator *datasource.Aggregator, simulator *datasource.Simulator, identity *service.IdentityService, logger *zap.Logger) *AirportDataHandler {
	return &AirportDataHandler{
		aggregator: aggregator,
		simulator:  simulator,
		identity:   identity,
		logger:     logger,
	}
}

// DashboardData handles GET /api/airport/:code/dashboard-data: the combined
// payload with per-dataset failure isolation.
func (h *AirportDataHandler) DashboardData(c *fiber.Ctx) error {
	return c.JSON(h.aggregator.FetchDashboard(c.Context(), c.Params("code")))
}

// Dataset handles GET /api/airport/:code/:dataset for every single-dataset
// endpoint. A provider fault maps 1:1 to a single 500 response.
func (h *AirportDataHandler) Dataset(c *fiber.Ctx) error {
	dataset, ok := datasetRoutes[c.Params("dataset")]
	if !ok {
		return apperrors.NewNotFound("dataset")
	}

	switch dataset {
	case datasource.DatasetGateOperations:
		if err := policy.CanViewGateOperations(identityOrNil(c)); err != nil {
			return err
		}
	case datasource.DatasetComplaints:
		if err := policy.CanViewComplaints(identityOrNil(c)); err != nil {
			return err
		}
	}

	payload, err := h.aggregator.FetchDataset(c.Context(), dataset, c.Params("code"))
	if err != nil {
		h.logger.Error("dataset fetch failed",
			zap.String("dataset", dataset),
			zap.String("airport", c.Params("code")),
			zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": datasource.FailureMessage(dataset),
		})
	}
	return c.JSON(payload)
}

// TrackBaggage handles GET /api/baggage/track: passenger-facing, no role
// gating.
func (h *AirportDataHandler) TrackBaggage(c *fiber.Ctx) error {
	return c.JSON(h.simulator.TrackBaggage(c.Query("bag_id"), c.Query("flight_number")))
}

// SubmitComplaint handles POST /api/complaints/submit: passenger-facing, no
// role gating.
func (h *AirportDataHandler) SubmitComplaint(c *fiber.Ctx) error {
	var req struct {
		PassengerName string `json:"passenger_name"`
		FlightNumber  string `json:"flight_number"`
		BagID         string `json:"bag_id"`
		IssueType     string `json:"issue_type"`
		Description   string `json:"description"`
		AirportCode   string `json:"airport_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	return c.JSON(h.simulator.SubmitComplaint(
		req.PassengerName,
		req.FlightNumber,
		req.BagID,
		req.IssueType,
		req.Description,
		req.AirportCode,
	))
}

// StaffList handles GET /api/airport/:code/staff-list.
func (h *AirportDataHandler) StaffList(c *fiber.Ctx) error {
	staff, err := h.identity.StaffList(c.Context(), identityOrNil(c), c.Params("code"))
	if err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(staff))
	for _, s := range staff {
		entry := fiber.Map{
			"id":        s.ID,
			"full_name": s.FullName,
			"email":     s.Email,
		}
		if s.WorkAssignment != nil {
			entry["work_assignment"] = *s.WorkAssignment
		}
		result = append(result, entry)
	}
	return c.JSON(fiber.Map{"staff": result})
}

// ManagerOverview handles GET /api/airport/:code/manager-overview.
func (h *AirportDataHandler) ManagerOverview(c *fiber.Ctx) error {
	overview, err := h.identity.Overview(c.Context(), identityOrNil(c), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// StaffAllocation handles GET /api/admin/staff-allocation.
func (h *AirportDataHandler) StaffAllocation(c *fiber.Ctx) error {
	allocation, err := h.identity.StaffAllocation(c.Context(), identityOrNil(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"airports": allocation})
}
