package notify

import (
	"github.com/google/uuid"
)

// Kind identifies a notification template.
type Kind string

const (
	KindSubmitted            Kind = "application_submitted"
	KindHRAlert              Kind = "new_application_alert"
	KindApproved             Kind = "application_approved"
	KindRejected             Kind = "application_rejected"
	KindDemoScheduled        Kind = "demo_scheduled"
	KindResults              Kind = "evaluation_results"
	KindRequirementReviewed  Kind = "requirement_reviewed"
	KindRequirementRequested Kind = "requirement_requested"
)

// Event is one notification to deliver. Data feeds the subject and body
// templates for the event's Kind.
type Event struct {
	Kind          Kind
	To            string
	ApplicationID *uuid.UUID
	Data          map[string]string
}

// Dispatcher delivers notification events without blocking the caller.
// Delivery failures are logged, never returned.
type Dispatcher interface {
	// Notify renders and sends the event in the background and records an
	// audit row on success.
	Notify(event Event)
	// Wait blocks until all in-flight notifications have settled.
	Wait()
}
