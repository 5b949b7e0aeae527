package policy

import "github.com/spec-kit/airport-dashboard/internal/domain"

// DefaultWidgets is the full dashboard widget set admins and managers see.
var DefaultWidgets = []string{
	"ai-alerts",
	"conveyor-system",
	"baggage-tracking",
	"ai-insights",
	"passenger-flow",
	"queue-status",
	"flight-status",
	"security-status",
	"resource-utilization",
	"staff-availability",
	"facilities",
}

// staffWidgets maps a work assignment onto the widget subset that staff
// member's dashboard renders.
var staffWidgets = map[domain.WorkAssignment][]string{
	domain.AssignmentBaggage:  {"ai-alerts", "conveyor-system", "baggage-tracking", "ai-insights"},
	domain.AssignmentGates:    {"ai-alerts", "flight-status", "passenger-flow", "queue-status", "facilities"},
	domain.AssignmentSecurity: {"ai-alerts", "security-status", "queue-status", "staff-availability"},
	domain.AssignmentCheckIn:  {"ai-alerts", "queue-status", "passenger-flow", "staff-availability"},
}

// WidgetsFor selects the widget set for an identity. Staff get the subset
// for their assignment; an unknown or missing assignment falls back to the
// full default set.
func WidgetsFor(id domain.Identity) []string {
	if id.Role == domain.RoleStaff {
		assignment, err := domain.ParseWorkAssignment(id.WorkAssignment)
		if err == nil {
			if widgets, ok := staffWidgets[assignment]; ok {
				return append([]string(nil), widgets...)
			}
		}
	}
	return append([]string(nil), DefaultWidgets...)
}

// AlertScopesFor computes the alert scope tags the client may render:
// everyone gets "all"; staff add their assignment; managers add
// "management" plus any assignment; admins add "management".
func AlertScopesFor(id domain.Identity) []string {
	scopes := []string{"all"}
	switch id.Role {
	case domain.RoleStaff:
		if id.WorkAssignment != "" {
			scopes = append(scopes, id.WorkAssignment)
		}
	case domain.RoleManager:
		scopes = append(scopes, "management")
		if id.WorkAssignment != "" {
			scopes = append(scopes, id.WorkAssignment)
		}
	case domain.RoleAdmin:
		scopes = append(scopes, "management")
	}
	return scopes
}
