package service

// FactPublisher emits domain facts for external collaborators (payment
// capture, notification dispatch). Implemented by pkg/rabbitmq.Publisher.
// Publishing is best-effort: a failed emit never rolls back the mutation it
// describes, collaborators reconcile from persisted state.
type FactPublisher interface {
	Publish(routingKey string, payload any) error
}
