package handler

import (
	"context"
	"time"

	"github.com/campusops/events-core/internal/models"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn     func(ctx context.Context, event *models.Event, actor models.Actor) error
	getFn        func(ctx context.Context, id string) (*models.Event, error)
	listFn       func(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	updateFn     func(ctx context.Context, event *models.Event, actor models.Actor) error
	submitFn     func(ctx context.Context, eventID string, actor models.Actor) (*models.Event, error)
	transitionFn func(ctx context.Context, eventID string, target models.EventStatus, actor models.Actor, reason string) (*models.Event, error)
	archiveFn    func(ctx context.Context, eventID string, archived bool, actor models.Actor) error
	dueFn        func(ctx context.Context) ([]models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event, actor models.Actor) error {
	return m.createFn(ctx, event, actor)
}
func (m *mockEventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	return m.listFn(ctx, status)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, event *models.Event, actor models.Actor) error {
	return m.updateFn(ctx, event, actor)
}
func (m *mockEventService) Submit(ctx context.Context, eventID string, actor models.Actor) (*models.Event, error) {
	return m.submitFn(ctx, eventID, actor)
}
func (m *mockEventService) Transition(ctx context.Context, eventID string, target models.EventStatus, actor models.Actor, reason string) (*models.Event, error) {
	return m.transitionFn(ctx, eventID, target, actor, reason)
}
func (m *mockEventService) SetArchived(ctx context.Context, eventID string, archived bool, actor models.Actor) error {
	return m.archiveFn(ctx, eventID, archived, actor)
}
func (m *mockEventService) DueForCompletion(ctx context.Context) ([]models.Event, error) {
	return m.dueFn(ctx)
}

// --- Mock RegistrationService ---

type mockRegistrationService struct {
	registerFn         func(ctx context.Context, eventID, userID, paymentMethod string) (*models.Registration, error)
	cancelFn           func(ctx context.Context, registrationID string, actor models.Actor) (*models.Registration, error)
	getFn              func(ctx context.Context, id string) (*models.Registration, error)
	listFn             func(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error)
	paymentCompletedFn func(ctx context.Context, registrationID string) error
	paymentFailedFn    func(ctx context.Context, registrationID string) error
	markAttendedFn     func(ctx context.Context, registrationID string, actor models.Actor) error
}

func (m *mockRegistrationService) Register(ctx context.Context, eventID, userID, paymentMethod string) (*models.Registration, error) {
	return m.registerFn(ctx, eventID, userID, paymentMethod)
}
func (m *mockRegistrationService) Cancel(ctx context.Context, registrationID string, actor models.Actor) (*models.Registration, error) {
	return m.cancelFn(ctx, registrationID, actor)
}
func (m *mockRegistrationService) GetRegistration(ctx context.Context, id string) (*models.Registration, error) {
	return m.getFn(ctx, id)
}
func (m *mockRegistrationService) ListByEvent(ctx context.Context, eventID string, status *models.RegistrationStatus) ([]models.Registration, error) {
	return m.listFn(ctx, eventID, status)
}
func (m *mockRegistrationService) OnPaymentCompleted(ctx context.Context, registrationID string) error {
	return m.paymentCompletedFn(ctx, registrationID)
}
func (m *mockRegistrationService) OnPaymentFailed(ctx context.Context, registrationID string) error {
	return m.paymentFailedFn(ctx, registrationID)
}
func (m *mockRegistrationService) MarkAttended(ctx context.Context, registrationID string, actor models.Actor) error {
	return m.markAttendedFn(ctx, registrationID, actor)
}

// --- Mock WhitelistService ---

type mockWhitelistService struct {
	addUserFn    func(ctx context.Context, eventID, userID string, actor models.Actor) error
	removeUserFn func(ctx context.Context, eventID, userID string, actor models.Actor) error
	addRoleFn    func(ctx context.Context, eventID string, role models.Role, actor models.Actor) error
	removeRoleFn func(ctx context.Context, eventID string, role models.Role, actor models.Actor) error
	listFn       func(ctx context.Context, eventID string) ([]models.WhitelistEntry, error)
}

func (m *mockWhitelistService) AddUser(ctx context.Context, eventID, userID string, actor models.Actor) error {
	return m.addUserFn(ctx, eventID, userID, actor)
}
func (m *mockWhitelistService) RemoveUser(ctx context.Context, eventID, userID string, actor models.Actor) error {
	return m.removeUserFn(ctx, eventID, userID, actor)
}
func (m *mockWhitelistService) AddRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error {
	return m.addRoleFn(ctx, eventID, role, actor)
}
func (m *mockWhitelistService) RemoveRole(ctx context.Context, eventID string, role models.Role, actor models.Actor) error {
	return m.removeRoleFn(ctx, eventID, role, actor)
}
func (m *mockWhitelistService) List(ctx context.Context, eventID string) ([]models.WhitelistEntry, error) {
	return m.listFn(ctx, eventID)
}

// --- Mock FulfillmentService ---

type mockFulfillmentService struct {
	dueRemindersFn func(ctx context.Context, window time.Duration) ([]models.Registration, error)
	markReminderFn func(ctx context.Context, registrationID string) error
	certEligibleFn func(ctx context.Context, eventID string) ([]models.Registration, error)
	markCertSentFn func(ctx context.Context, registrationID string) error
}

func (m *mockFulfillmentService) DueReminders(ctx context.Context, window time.Duration) ([]models.Registration, error) {
	return m.dueRemindersFn(ctx, window)
}
func (m *mockFulfillmentService) MarkReminderSent(ctx context.Context, registrationID string) error {
	return m.markReminderFn(ctx, registrationID)
}
func (m *mockFulfillmentService) CertificateEligible(ctx context.Context, eventID string) ([]models.Registration, error) {
	return m.certEligibleFn(ctx, eventID)
}
func (m *mockFulfillmentService) MarkCertificateSent(ctx context.Context, registrationID string) error {
	return m.markCertSentFn(ctx, registrationID)
}
