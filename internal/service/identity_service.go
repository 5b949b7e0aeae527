package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/airport-dashboard/internal/auth"
	"github.com/spec-kit/airport-dashboard/internal/config"
	"github.com/spec-kit/airport-dashboard/internal/datasource"
	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/events"
	"github.com/spec-kit/airport-dashboard/internal/policy"
	"github.com/spec-kit/airport-dashboard/internal/repository"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// IdentityService coordinates signup, login and administrative account
// management against the identity store.
type IdentityService struct {
	users      repository.UserRepository
	aggregator *datasource.Aggregator
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// IdentityDependencies encapsulates requirements for the identity service.
type IdentityDependencies struct {
	UserRepo   repository.UserRepository
	Aggregator *datasource.Aggregator
	Dispatcher events.Dispatcher
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		aggregator: deps.Aggregator,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TokenTTLMinutes),
		bcryptCost: cfg.Session.BcryptCost,
	}
}

// TokenManager exposes the session token manager for the session gate.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// EnsureAdmin seeds the first admin account when the configured email does
// not exist yet. Other roles are minted through the management surface by an
// admin, so without this there would be no way in.
func (s *IdentityService) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
	}
	return s.users.Create(ctx, admin)
}

// Signup creates a passenger account. The role is always "user" regardless
// of input; passengers never carry an airport or work assignment.
func (s *IdentityService) Signup(ctx context.Context, fullName, email, password, organization string) (*domain.User, string, time.Time, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)

	if fullName == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("All fields are required.")
	}
	if len(password) < 6 {
		return nil, "", time.Time{}, apperrors.NewValidationError("Password must be at least 6 characters long.")
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Role:         domain.RolePassenger,
		PasswordHash: hash,
		Organization: optional(organization),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}

	s.publishUserCreated(ctx, user, user.ID)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Login authenticates by email and password.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email and password are required.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email or password.")
		}
		return nil, "", time.Time{}, apperrors.NewStorageError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid email or password.")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// CreateUserInput carries the administrative creation form.
type CreateUserInput struct {
	Email          string
	FullName       string
	Role           string
	Password       string
	AirportCode    string
	WorkAssignment string
}

// CreateUser creates a staff or manager account on behalf of an admin or
// manager, enforcing the creation authority matrix.
func (s *IdentityService) CreateUser(ctx context.Context, actor domain.Identity, input CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	airportCode := strings.TrimSpace(input.AirportCode)
	workAssignment := strings.TrimSpace(input.WorkAssignment)

	if email == "" || fullName == "" || input.Role == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("All fields are required.")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("Password must be at least 6 characters long.")
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := policy.CanCreateUser(actor, role, airportCode, workAssignment); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		Role:           role,
		PasswordHash:   hash,
		AirportCode:    optional(airportCode),
		WorkAssignment: optional(workAssignment),
		CreatedBy:      optional(actor.ID),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publishUserCreated(ctx, user, actor.ID)
	return user, nil
}

// DeleteUser removes an account subject to the deletion guards.
func (s *IdentityService) DeleteUser(ctx context.Context, actor domain.Identity, targetID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return apperrors.NewStorageError(err)
	}

	if err := policy.CanDeleteUser(actor, target); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return apperrors.NewStorageError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeleted,
			ActorID:   actor.ID,
			Timestamp: time.Now().UTC(),
			Payload:   events.UserDeletedPayload{UserID: target.ID, Role: target.Role},
		})
	}
	return nil
}

// VisibleUsers lists the records the actor's scope allows: admins see all
// users, managers only staff at their own airport.
func (s *IdentityService) VisibleUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	scope := policy.VisibleUserScope(actor)
	filter := repository.UserFilter{}
	if !scope.All {
		staffRole := domain.RoleStaff
		filter.Role = &staffRole
		filter.AirportCode = &scope.AirportCode
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return users, nil
}

// StaffList returns the staff roster for one airport.
func (s *IdentityService) StaffList(ctx context.Context, actor *domain.Identity, airportCode string) ([]domain.User, error) {
	if err := policy.CanViewStaffList(actor, airportCode); err != nil {
		return nil, err
	}

	staffRole := domain.RoleStaff
	users, err := s.users.List(ctx, repository.UserFilter{Role: &staffRole, AirportCode: &airportCode})
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return users, nil
}

// AirportAllocation summarizes staffing and resources for one airport.
type AirportAllocation struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Managers        int      `json:"managers"`
	TotalStaff      int      `json:"total_staff"`
	WorkAssignments []string `json:"work_assignments"`
	Resources       struct {
		Belts int `json:"belts"`
		Gates int `json:"gates"`
	} `json:"resources"`
}

// StaffAllocation builds the admin-only cross-airport staffing summary,
// enriched with belt counts from the conveyor feed where available.
func (s *IdentityService) StaffAllocation(ctx context.Context, actor *domain.Identity) ([]AirportAllocation, error) {
	if err := policy.CanViewAdminAggregates(actor); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	byAirport := map[string]*AirportAllocation{}
	assignments := map[string]map[string]struct{}{}
	for _, u := range users {
		if u.AirportCode == nil || *u.AirportCode == "" {
			continue
		}
		code := *u.AirportCode
		alloc, ok := byAirport[code]
		if !ok {
			alloc = &AirportAllocation{Code: code, Name: code}
			if airport, known := domain.Airports[code]; known {
				alloc.Name = airport.Name
			}
			byAirport[code] = alloc
			assignments[code] = map[string]struct{}{}
		}

		switch u.Role {
		case domain.RoleManager:
			alloc.Managers++
		case domain.RoleStaff:
			alloc.TotalStaff++
			if u.WorkAssignment != nil && *u.WorkAssignment != "" {
				assignments[code][*u.WorkAssignment] = struct{}{}
			}
		}
	}

	result := make([]AirportAllocation, 0, len(byAirport))
	for code, alloc := range byAirport {
		for assignment := range assignments[code] {
			alloc.WorkAssignments = append(alloc.WorkAssignments, assignment)
		}
		alloc.Resources.Belts = s.beltCount(ctx, code)
		alloc.Resources.Gates = 20
		result = append(result, *alloc)
	}
	return result, nil
}

// ManagerOverview summarizes one airport for its manager: staff headcount
// plus issue and alert counts from the conveyor feed.
type ManagerOverview struct {
	TotalStaff    int    `json:"total_staff"`
	ActiveIssues  int    `json:"active_issues"`
	BaggageAlerts int    `json:"baggage_alerts"`
	QueueStatus   string `json:"queue_status"`
}

// Overview computes the manager overview for an airport.
func (s *IdentityService) Overview(ctx context.Context, actor *domain.Identity, airportCode string) (*ManagerOverview, error) {
	if err := policy.CanViewManagerOverview(actor, airportCode); err != nil {
		return nil, err
	}

	staffRole := domain.RoleStaff
	staff, err := s.users.List(ctx, repository.UserFilter{Role: &staffRole, AirportCode: &airportCode})
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	overview := &ManagerOverview{TotalStaff: len(staff), QueueStatus: "Normal"}
	if payload, err := s.aggregator.FetchDataset(ctx, datasource.DatasetLiveConveyors, airportCode); err == nil {
		for _, belt := range beltList(payload) {
			if health, _ := belt["health_status"].(string); health != "Good" {
				overview.ActiveIssues++
			}
		}
		overview.BaggageAlerts = len(alertList(payload))
	}
	return overview, nil
}

func (s *IdentityService) beltCount(ctx context.Context, airportCode string) int {
	payload, err := s.aggregator.FetchDataset(ctx, datasource.DatasetLiveConveyors, airportCode)
	if err != nil {
		return 0
	}
	return len(beltList(payload))
}

// beltList tolerates both live payloads ([]datasource.Payload) and payloads
// rehydrated from the cache ([]any of map[string]any).
func beltList(payload datasource.Payload) []map[string]any {
	return anyMapSlice(payload["conveyor_belts"])
}

func alertList(payload datasource.Payload) []map[string]any {
	return anyMapSlice(payload["ai_alerts"])
}

func anyMapSlice(raw any) []map[string]any {
	switch typed := raw.(type) {
	case []datasource.Payload:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}
		return out
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func (s *IdentityService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.NewValidationError("An account with this email already exists.")
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewStorageError(err)
	}
	return nil
}

func (s *IdentityService) publishUserCreated(ctx context.Context, user *domain.User, actorID string) {
	if s.dispatcher == nil {
		return
	}
	payload := events.UserCreatedPayload{UserID: user.ID, Email: user.Email, Role: user.Role}
	if user.AirportCode != nil {
		payload.AirportCode = *user.AirportCode
	}
	if user.WorkAssignment != nil {
		payload.WorkAssignment = *user.WorkAssignment
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserCreated,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
