package events

// The fixed set of domain-event topics this service subscribes to. All
// instances share one consumer group, so they partition the stream instead
// of duplicating it.
const (
	TopicAccountCreated           = "account-created"
	TopicAccountDeletionRequested = "account-deletion-requested"
	TopicContactRequestSent       = "contact-request-sent"
	TopicContactRequestAccepted   = "contact-request-accepted"
	TopicContactRequestRejected   = "contact-request-rejected"
	TopicContactBlocked           = "contact-blocked"
	TopicVirtualCardCreated       = "virtual-card-created"
	TopicVirtualCardBlocked       = "virtual-card-blocked"
	TopicVirtualCardToppedUp      = "virtual-card-topped-up"
	TopicPhysicalCardRequested    = "physical-card-requested"
	TopicVirtualCardDeleted       = "virtual-card-deleted"
)

func Topics() []string {
	return []string{
		TopicAccountCreated,
		TopicAccountDeletionRequested,
		TopicContactRequestSent,
		TopicContactRequestAccepted,
		TopicContactRequestRejected,
		TopicContactBlocked,
		TopicVirtualCardCreated,
		TopicVirtualCardBlocked,
		TopicVirtualCardToppedUp,
		TopicPhysicalCardRequested,
		TopicVirtualCardDeleted,
	}
}
