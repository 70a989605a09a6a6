package service

import (
	"errors"

	"github.com/campusops/events-core/internal/models"
)

var (
	ErrInvalidTransition   = errors.New("no such transition from the current status")
	ErrForbiddenTransition = errors.New("actor may not perform this transition")
	ErrAlreadyTerminal     = errors.New("event is archived")
	ErrReasonRequired      = errors.New("a non-empty reason is required")
)

// transitionRule is one edge of the workflow graph plus the permission that
// gates it. The whole rule set lives in this table so it can be swept by a
// single test instead of being scattered across handlers.
type transitionRule struct {
	from      models.EventStatus
	to        models.EventStatus
	permitted func(event *models.Event, actor models.Actor) bool
}

func isCreator(event *models.Event, actor models.Actor) bool {
	return actor.UserID == event.CreatedBy
}

func isEventOffice(_ *models.Event, actor models.Actor) bool {
	return actor.IsEventOffice()
}

// Workshops publish only through the Event Office; creators may publish the
// other types themselves.
func canPublish(event *models.Event, actor models.Actor) bool {
	if actor.IsEventOffice() {
		return true
	}
	return isCreator(event, actor) && event.Type != models.TypeWorkshop
}

// Completion happens automatically when the end date passes (system actor)
// or early by explicit Event Office action.
func canComplete(_ *models.Event, actor models.Actor) bool {
	return actor.IsSystem() || actor.IsEventOffice()
}

var transitionTable = []transitionRule{
	{models.StatusDraft, models.StatusPendingApproval, isCreator},
	{models.StatusPendingApproval, models.StatusApproved, isEventOffice},
	{models.StatusPendingApproval, models.StatusNeedsEdits, isEventOffice},
	{models.StatusNeedsEdits, models.StatusPendingApproval, isCreator},
	{models.StatusPendingApproval, models.StatusRejected, isEventOffice},
	{models.StatusNeedsEdits, models.StatusRejected, isEventOffice},
	{models.StatusApproved, models.StatusPublished, canPublish},
	{models.StatusPublished, models.StatusCancelled, isEventOffice},
	{models.StatusPublished, models.StatusCompleted, canComplete},
}

// reasonRequired lists the targets that must carry an explanation back to
// the creator.
func reasonRequired(target models.EventStatus) bool {
	return target == models.StatusRejected || target == models.StatusNeedsEdits
}

// CheckTransition validates a workflow transition without persisting it.
// The stored status is never touched when an error comes back.
func CheckTransition(event *models.Event, target models.EventStatus, actor models.Actor, reason string) error {
	if event.Archived {
		return ErrAlreadyTerminal
	}

	for _, rule := range transitionTable {
		if rule.from != event.Status || rule.to != target {
			continue
		}
		if !rule.permitted(event, actor) {
			return ErrForbiddenTransition
		}
		if reasonRequired(target) && reason == "" {
			return ErrReasonRequired
		}
		return nil
	}
	return ErrInvalidTransition
}

// IsEditable reports whether the actor may edit the event's content. Only
// the creator edits, never after a rejection, and workshop content stays
// with its creator even when the actor also holds Event Office powers.
func IsEditable(event *models.Event, actor models.Actor) bool {
	if actor.UserID != event.CreatedBy {
		return false
	}
	if event.Status == models.StatusRejected {
		return false
	}
	if event.Type == models.TypeWorkshop && actor.IsEventOffice() {
		return false
	}
	return true
}

// CheckArchive gates the archive flag toggle. The flag is reversible and
// idempotent, restricted to Event Office / Admin.
func CheckArchive(actor models.Actor) error {
	if !actor.IsEventOffice() {
		return ErrForbiddenTransition
	}
	return nil
}
