// Package policy is the single decision table for the portal. Every rule
// about who may view which dashboard, see which widget, or touch which
// record lives here as a pure function of the request identity, so handlers
// never carry inline role checks.
package policy

import (
	"fmt"

	"github.com/spec-kit/airport-dashboard/internal/domain"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// Decision is the evaluator's answer for UI-facing checks. A denial carries
// both a redirect target for page handlers and a reason; API handlers
// translate the same denial into a kind-tagged error instead.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   string
}

// Denied reports whether the decision refuses the request.
func (d Decision) Denied() bool {
	return !d.Allow
}

// Err converts a denial into the API-facing error form.
func (d Decision) Err() error {
	if d.Allow {
		return nil
	}
	if d.Reason == reasonLoginRequired {
		return apperrors.NewUnauthorized("authentication required")
	}
	return apperrors.NewForbidden(d.Reason)
}

const reasonLoginRequired = "Please login to continue."

func allow() Decision {
	return Decision{Allow: true}
}

func denyToLogin(next string) Decision {
	return Decision{Redirect: loginPath(next), Reason: reasonLoginRequired}
}

func deny(redirect, reason string) Decision {
	return Decision{Redirect: redirect, Reason: reason}
}

func loginPath(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + next
}

// StaffArea gates the staff portal and settings pages: any authenticated
// operational role may enter, passengers go to the passenger area.
func StaffArea(id *domain.Identity, requestedPath string) Decision {
	if id == nil {
		return denyToLogin(requestedPath)
	}
	if !id.Role.IsOperational() {
		return deny("/passenger", "This area is only available to staff, managers and administrators.")
	}
	return allow()
}

// DashboardAccess decides whether the identity may open the dashboard for
// the given airport. Staff and managers are pinned to their assigned
// airport: a foreign code redirects to their own dashboard, or to their role
// portal when no airport is assigned.
func DashboardAccess(id *domain.Identity, airportCode string) Decision {
	if id == nil {
		return denyToLogin("/dashboard/" + airportCode)
	}
	if !id.Role.IsOperational() {
		return deny("/passenger", "Airport dashboards are only available to staff, managers and administrators.")
	}
	if id.Role == domain.RoleStaff || id.Role == domain.RoleManager {
		if id.AirportCode == "" {
			return deny("/portal/"+string(id.Role), "You can only access the dashboard for your assigned airport.")
		}
		if id.AirportCode != airportCode {
			return deny("/dashboard/"+id.AirportCode, "You can only access the dashboard for your assigned airport.")
		}
	}
	return allow()
}

// PortalAccess decides entry into the role-named portals. Managers share the
// staff portal; a role token outside the enumeration is a not-found, not a
// denial.
func PortalAccess(id *domain.Identity, requestedRole string) (Decision, error) {
	role, err := domain.ParseRole(requestedRole)
	if err != nil {
		return Decision{}, apperrors.NewNotFound("portal")
	}
	if id == nil {
		return denyToLogin("/portal/" + string(role)), nil
	}
	if role == domain.RolePassenger && id.Role == domain.RolePassenger {
		return deny("/passenger", ""), nil
	}
	if id.Role == domain.RoleManager {
		if role == domain.RoleManager || role == domain.RoleStaff {
			return allow(), nil
		}
		return Decision{}, apperrors.NewForbidden("portal not available for your role")
	}
	if id.Role != role {
		return Decision{}, apperrors.NewForbidden("portal not available for your role")
	}
	return allow(), nil
}

// CanManageUsers gates the user management surface.
func CanManageUsers(id *domain.Identity, requestedPath string) Decision {
	if id == nil {
		return denyToLogin(requestedPath)
	}
	if id.Role != domain.RoleAdmin && id.Role != domain.RoleManager {
		return deny("/passenger", "User management is only available to administrators and managers.")
	}
	return allow()
}

// CanCreateUser applies the creation authority matrix: managers mint only
// staff at their own airport, admins mint managers and staff, and staff
// records always need a work assignment.
func CanCreateUser(actor domain.Identity, role domain.Role, airportCode, workAssignment string) error {
	switch actor.Role {
	case domain.RoleManager:
		if role != domain.RoleStaff {
			return apperrors.NewForbidden("Managers can only create staff members.")
		}
		if airportCode != actor.AirportCode {
			return apperrors.NewForbidden("Managers can only assign staff to their own airport.")
		}
	case domain.RoleAdmin:
		if role != domain.RoleManager && role != domain.RoleStaff {
			return apperrors.NewForbidden("Admin can only create managers and staff.")
		}
	default:
		return apperrors.NewForbidden("User management is only available to administrators and managers.")
	}

	if role == domain.RoleStaff {
		if workAssignment == "" {
			return apperrors.NewValidationError("Work assignment is required for staff members.")
		}
		if _, err := domain.ParseWorkAssignment(workAssignment); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if airportCode == "" {
			return apperrors.NewValidationError("Airport assignment is required for staff members.")
		}
	}
	if role == domain.RoleManager && airportCode == "" {
		return apperrors.NewValidationError("Airport assignment is required for managers.")
	}
	return nil
}

// CanDeleteUser applies the deletion guards: never yourself, never an admin,
// and managers only reach staff at their own airport.
func CanDeleteUser(actor domain.Identity, target *domain.User) error {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
		return apperrors.NewForbidden("User management is only available to administrators and managers.")
	}
	if target.ID == actor.ID {
		return apperrors.NewForbidden("You cannot delete your own account.")
	}
	if target.Role == domain.RoleAdmin {
		return apperrors.NewForbidden("Cannot delete admin accounts.")
	}
	if actor.Role == domain.RoleManager {
		if target.Role != domain.RoleStaff {
			return apperrors.NewForbidden("Managers can only delete staff members.")
		}
		if target.AirportCode == nil || *target.AirportCode != actor.AirportCode {
			return apperrors.NewForbidden("You can only delete staff from your assigned airport.")
		}
	}
	return nil
}

// CanSendNotification checks notification authority: manager/admin senders,
// staff recipients, managers confined to their own airport.
func CanSendNotification(actor domain.Identity, recipient *domain.User) error {
	if actor.Role != domain.RoleManager && actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Only managers and administrators can send staff notifications.")
	}
	if recipient.Role != domain.RoleStaff {
		return apperrors.NewNotFound("staff member")
	}
	if actor.Role == domain.RoleManager {
		if actor.AirportCode == "" || recipient.AirportCode == nil || *recipient.AirportCode != actor.AirportCode {
			return apperrors.NewForbidden("You can only notify staff from your airport.")
		}
	}
	return nil
}

// CanAcknowledge confirms only the recipient may acknowledge a notification.
func CanAcknowledge(actor domain.Identity, n *domain.StaffNotification) error {
	if !actor.Role.IsOperational() {
		return apperrors.NewForbidden("Only staff can acknowledge notifications.")
	}
	if n.RecipientID != actor.ID {
		return apperrors.NewForbidden("You can only acknowledge your notifications.")
	}
	return nil
}

// CanViewStaffList checks access to a per-airport staff roster: admin
// anywhere, manager only at their own airport.
func CanViewStaffList(id *domain.Identity, airportCode string) error {
	if id == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if id.Role == domain.RoleAdmin {
		return nil
	}
	if id.Role == domain.RoleManager && id.AirportCode == airportCode {
		return nil
	}
	return apperrors.NewForbidden("Unauthorized")
}

// CanViewAdminAggregates gates cross-airport admin views.
func CanViewAdminAggregates(id *domain.Identity) error {
	if id == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if id.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Unauthorized")
	}
	return nil
}

// UserScope describes which user records a listing may return.
type UserScope struct {
	// All means every user record is visible.
	All bool
	// AirportCode limits visibility to staff at one airport when All is false.
	AirportCode string
}

// VisibleUserScope computes the record scope for user listings: admins see
// everyone, managers see only staff at their airport.
func VisibleUserScope(actor domain.Identity) UserScope {
	if actor.Role == domain.RoleAdmin {
		return UserScope{All: true}
	}
	return UserScope{AirportCode: actor.AirportCode}
}

// CanViewGateOperations restricts the gate-operations feed to gate staff,
// managers and admins.
func CanViewGateOperations(id *domain.Identity) error {
	if id == nil || !id.Role.IsOperational() {
		return apperrors.NewForbidden("Unauthorized")
	}
	if id.Role == domain.RoleStaff && id.WorkAssignment != string(domain.AssignmentGates) {
		return apperrors.NewForbidden("Unauthorized")
	}
	return nil
}

// CanViewComplaints restricts the complaints feed to operational roles.
func CanViewComplaints(id *domain.Identity) error {
	if id == nil || !id.Role.IsOperational() {
		return apperrors.NewForbidden("Unauthorized")
	}
	return nil
}

// CanViewManagerOverview restricts the overview to the airport's manager.
func CanViewManagerOverview(id *domain.Identity, airportCode string) error {
	if id == nil || id.Role != domain.RoleManager || id.AirportCode != airportCode {
		return apperrors.NewForbidden("Unauthorized")
	}
	return nil
}

// LoginRedirect picks the landing destination after login: passengers to
// their area, managers to the manager portal, everyone else to the portal
// named after their role.
func LoginRedirect(role domain.Role, next string) string {
	if next != "" {
		return next
	}
	switch role {
	case domain.RolePassenger:
		return "/passenger"
	case domain.RoleManager:
		return "/portal/manager"
	default:
		return fmt.Sprintf("/portal/%s", role)
	}
}
