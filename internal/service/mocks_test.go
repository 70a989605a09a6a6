package service

import (
	"context"
	"sync"
	"time"

	"github.com/campusops/events-core/internal/models"
	"gorm.io/gorm"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn           func(ctx context.Context, event *models.Event) error
	findByIDFn         func(ctx context.Context, id string) (*models.Event, error)
	findAllFn          func(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	findEndedFn        func(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	saveFn             func(ctx context.Context, event *models.Event) error
	updateStatusFromFn func(ctx context.Context, id string, from, to models.EventStatus, reason string) (int64, error)
	setArchivedFn      func(ctx context.Context, id string, archived bool) error
	incrementFn        func(ctx context.Context, tx *gorm.DB, id string) (int64, error)
	decrementFn        func(ctx context.Context, tx *gorm.DB, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	return m.findAllFn(ctx, status)
}
func (m *mockEventRepo) FindPublishedEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	return m.findEndedFn(ctx, cutoff)
}
func (m *mockEventRepo) Save(ctx context.Context, event *models.Event) error {
	return m.saveFn(ctx, event)
}
func (m *mockEventRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.EventStatus, reason string) (int64, error) {
	if m.updateStatusFromFn != nil {
		return m.updateStatusFromFn(ctx, id, from, to, reason)
	}
	return 1, nil
}
func (m *mockEventRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	if m.setArchivedFn != nil {
		return m.setArchivedFn(ctx, id, archived)
	}
	return nil
}
func (m *mockEventRepo) IncrementRegistered(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, tx, id)
	}
	return 1, nil
}
func (m *mockEventRepo) DecrementRegistered(ctx context.Context, tx *gorm.DB, id string) error {
	if m.decrementFn != nil {
		return m.decrementFn(ctx, tx, id)
	}
	return nil
}
func (m *mockEventRepo) GetDB() *gorm.DB { return nil }

// --- Mock RegistrationRepository ---

type mockRegRepo struct {
	createFn       func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	findByIDFn     func(ctx context.Context, id string) (*models.Registration, error)
	findByEventFn  func(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error)
	findActiveFn   func(ctx context.Context, tx *gorm.DB, userID, eventID string) (*models.Registration, error)
	updateFieldsFn func(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error
	dueRemindersFn func(ctx context.Context, from, until time.Time) ([]models.Registration, error)
	certEligibleFn func(ctx context.Context, eventID string) ([]models.Registration, error)
}

func (m *mockRegRepo) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, reg)
	}
	return nil
}
func (m *mockRegRepo) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRegRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Registration, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRegRepo) FindByEventID(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	return m.findByEventFn(ctx, eventID, status)
}
func (m *mockRegRepo) FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID string) (*models.Registration, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, tx, userID, eventID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRegRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, tx, id, fields)
	}
	return nil
}
func (m *mockRegRepo) DueReminders(ctx context.Context, from, until time.Time) ([]models.Registration, error) {
	return m.dueRemindersFn(ctx, from, until)
}
func (m *mockRegRepo) CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error) {
	return m.certEligibleFn(ctx, eventID)
}
func (m *mockRegRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (m *mockRegRepo) GetDB() *gorm.DB { return nil }

// --- Mock UserRepository / WhitelistRepository ---

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}

type mockWhitelistRepo struct {
	addUserFn     func(ctx context.Context, eventID, userID string) error
	removeUserFn  func(ctx context.Context, eventID, userID string) error
	addRoleFn     func(ctx context.Context, eventID string, role models.Role) error
	removeRoleFn  func(ctx context.Context, eventID string, role models.Role) error
	findByEventFn func(ctx context.Context, eventID string) ([]models.WhitelistEntry, error)
}

func (m *mockWhitelistRepo) AddUser(ctx context.Context, eventID, userID string) error {
	if m.addUserFn != nil {
		return m.addUserFn(ctx, eventID, userID)
	}
	return nil
}
func (m *mockWhitelistRepo) RemoveUser(ctx context.Context, eventID, userID string) error {
	if m.removeUserFn != nil {
		return m.removeUserFn(ctx, eventID, userID)
	}
	return nil
}
func (m *mockWhitelistRepo) AddRole(ctx context.Context, eventID string, role models.Role) error {
	if m.addRoleFn != nil {
		return m.addRoleFn(ctx, eventID, role)
	}
	return nil
}
func (m *mockWhitelistRepo) RemoveRole(ctx context.Context, eventID string, role models.Role) error {
	if m.removeRoleFn != nil {
		return m.removeRoleFn(ctx, eventID, role)
	}
	return nil
}
func (m *mockWhitelistRepo) FindByEvent(ctx context.Context, eventID string) ([]models.WhitelistEntry, error) {
	if m.findByEventFn != nil {
		return m.findByEventFn(ctx, eventID)
	}
	return nil, nil
}

// --- Mock AccessResolver ---

type mockAccess struct {
	canAccessFn func(ctx context.Context, event *models.Event, userID string) (bool, error)
}

func (m *mockAccess) CanAccess(ctx context.Context, event *models.Event, userID string) (bool, error) {
	if m.canAccessFn != nil {
		return m.canAccessFn(ctx, event, userID)
	}
	return true, nil
}

// --- Recording FactPublisher ---

type recordingPublisher struct {
	mu    sync.Mutex
	facts []string
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facts = append(p.facts, routingKey)
	return nil
}

func (p *recordingPublisher) count(routingKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, f := range p.facts {
		if f == routingKey {
			n++
		}
	}
	return n
}
