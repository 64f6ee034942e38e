package service

import (
	"context"
	"time"

	"fundfolio/internal/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminService covers the administrative surface: script creation, daily NAV
// publication and user management. Credential checking itself happens
// upstream; this service only stores hashes.
type AdminService struct {
	store *database.Store
	log   *logrus.Logger
	clock Clock
}

func NewAdminService(store *database.Store, log *logrus.Logger) *AdminService {
	return &AdminService{store: store, log: log, clock: time.Now}
}

func (s *AdminService) WithClock(c Clock) *AdminService {
	s.clock = c
	return s
}

func (s *AdminService) today() time.Time {
	y, m, d := s.clock().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *AdminService) CreateScript(ctx context.Context, fundCode, name, category, amc string) (database.Script, error) {
	s.log.Infof("creating script with fund code: %s", fundCode)
	script, err := s.store.CreateScript(ctx, fundCode, name, category, amc)
	if err != nil {
		s.log.Warnf("script creation failed for %s: %v", fundCode, err)
		return database.Script{}, err
	}
	s.log.Infof("script created with id: %d", script.ID)
	return script, nil
}

// AddNavForToday publishes the NAV for a fund on the current valuation date.
// A second publication for the same date fails and leaves the first value
// untouched; the unique index on (script, date) enforces it.
func (s *AdminService) AddNavForToday(ctx context.Context, fundCode string, value decimal.Decimal) (database.Nav, error) {
	s.log.Infof("adding nav for fund code: %s, value: %s", fundCode, value)

	if value.Cmp(decimal.Zero) <= 0 {
		return database.Nav{}, ErrNonPositiveNav
	}
	script, err := s.store.ScriptByCode(ctx, fundCode)
	if err != nil {
		return database.Nav{}, err
	}
	nav, err := s.store.InsertNav(ctx, script.ID, s.today(), value)
	if err != nil {
		s.log.Warnf("nav addition failed for %s: %v", fundCode, err)
		return database.Nav{}, err
	}
	return nav, nil
}

func (s *AdminService) RegisterUser(ctx context.Context, username, password string, role database.Role) (database.User, error) {
	s.log.Infof("registering user: %s", username)

	if role != database.RoleAdmin && role != database.RoleUser {
		return database.User{}, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return database.User{}, err
	}
	user, err := s.store.CreateUser(ctx, username, string(hash), role)
	if err != nil {
		s.log.Warnf("registration failed for %s: %v", username, err)
		return database.User{}, err
	}
	s.log.Infof("user registered with id: %d", user.ID)
	return user, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]database.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	s.log.Infof("deleting user with id: %d", userID)
	return s.store.DeleteUser(ctx, userID)
}
