package events

// Event payloads are flat records whose field presence is not guaranteed;
// absent fields decode to zero values and degrade into notification content
// instead of failing the message.

type accountCreatedEvent struct {
	AccountID string `json:"accountId"`
	KYCStatus string `json:"kycstatus"`
}

type accountDeletionEvent struct {
	AccountID         string `json:"accountId"`
	ScheduledDeletion string `json:"scheduledDeletion"`
}

type contactRequestSentEvent struct {
	AddresseeID string `json:"addresseeId"`
	OmniTag     string `json:"omniTag"`
}

type contactRequestAcceptedEvent struct {
	RequesterID string `json:"requesterId"`
}

type contactRequestRejectedEvent struct {
	RequesterID string `json:"requesterId"`
}

type contactBlockedEvent struct {
	RequesterID string `json:"requesterId"`
	AddresseeID string `json:"addresseeId"`
	BlockedBy   string `json:"blockedBy"`
}

type virtualCardCreatedEvent struct {
	AccountID      string `json:"accountId"`
	LastFourDigits string `json:"lastFourDigits"`
	CardType       string `json:"cardType"`
}

type virtualCardBlockedEvent struct {
	AccountID   string `json:"accountId"`
	BlockReason string `json:"blockReason"`
}

type virtualCardToppedUpEvent struct {
	AccountID  string  `json:"accountId"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"newBalance"`
}

type physicalCardRequestedEvent struct {
	AccountID    string `json:"accountId"`
	DeliveryCity string `json:"deliveryCity"`
}

type virtualCardDeletedEvent struct {
	AccountID      string `json:"accountId"`
	LastFourDigits string `json:"lastFourDigits"`
}
