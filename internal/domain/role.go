package domain

import (
	"fmt"
	"strings"
)

// Role enumerates the portal roles. The set is closed: anything outside it is
// rejected when parsed, before any access decision is made.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleStaff     Role = "staff"
	RolePassenger Role = "user"
)

// ParseRole maps a role token onto the closed enumeration. An unrecognized
// token is malformed input, not a denial.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleStaff:
		return RoleStaff, nil
	case RolePassenger:
		return RolePassenger, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// IsOperational reports whether the role belongs to the staff side of the
// portal (dashboards, staff area) as opposed to the passenger side.
func (r Role) IsOperational() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// WorkAssignment is a staff member's functional area.
type WorkAssignment string

const (
	AssignmentBaggage  WorkAssignment = "baggage"
	AssignmentGates    WorkAssignment = "gates"
	AssignmentSecurity WorkAssignment = "security"
	AssignmentCheckIn  WorkAssignment = "check_in"
)

// ParseWorkAssignment validates a staff work assignment token.
func ParseWorkAssignment(raw string) (WorkAssignment, error) {
	switch WorkAssignment(strings.ToLower(strings.TrimSpace(raw))) {
	case AssignmentBaggage:
		return AssignmentBaggage, nil
	case AssignmentGates:
		return AssignmentGates, nil
	case AssignmentSecurity:
		return AssignmentSecurity, nil
	case AssignmentCheckIn:
		return AssignmentCheckIn, nil
	default:
		return "", fmt.Errorf("unknown work assignment %q", raw)
	}
}
