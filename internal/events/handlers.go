package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"omni_notifications/internal/domain"
	"omni_notifications/internal/model"
	"omni_notifications/internal/service/notify"
)

// ErrMalformedEvent marks payloads that cannot be decoded and topics without
// a handler. The consumer loop logs these and moves on; they never stop it.
var ErrMalformedEvent = errors.New("malformed event payload")

// Handlers turns domain events into notification records. Each handler is a
// pure mapping from event fields to one or more notifications, which go
// through the coordinator so they are persisted and pushed in one step.
type Handlers struct {
	svc *notify.Service
	log *zap.Logger
}

func NewHandlers(svc *notify.Service, logger *zap.Logger) *Handlers {
	return &Handlers{svc: svc, log: logger}
}

func (h *Handlers) Handle(ctx context.Context, topic string, payload []byte) error {
	switch topic {
	case TopicAccountCreated:
		return h.handleAccountCreated(ctx, payload)
	case TopicAccountDeletionRequested:
		return h.handleAccountDeletion(ctx, payload)
	case TopicContactRequestSent:
		return h.handleContactRequestSent(ctx, payload)
	case TopicContactRequestAccepted:
		return h.handleContactRequestAccepted(ctx, payload)
	case TopicContactRequestRejected:
		return h.handleContactRequestRejected(ctx, payload)
	case TopicContactBlocked:
		return h.handleContactBlocked(ctx, payload)
	case TopicVirtualCardCreated:
		return h.handleVirtualCardCreated(ctx, payload)
	case TopicVirtualCardBlocked:
		return h.handleVirtualCardBlocked(ctx, payload)
	case TopicVirtualCardToppedUp:
		return h.handleVirtualCardToppedUp(ctx, payload)
	case TopicPhysicalCardRequested:
		return h.handlePhysicalCardRequested(ctx, payload)
	case TopicVirtualCardDeleted:
		return h.handleVirtualCardDeleted(ctx, payload)
	default:
		return fmt.Errorf("%w: unknown topic %q", ErrMalformedEvent, topic)
	}
}

func decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return nil
}

func (h *Handlers) handleAccountCreated(ctx context.Context, payload []byte) error {
	var event accountCreatedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	if _, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Welcome to Omni!",
		Content:   "Your account has been successfully created. Complete your KYC to activate your wallet.",
		Category:  domain.CategoryAccount,
		Kind:      domain.KindInfo,
		Icon:      "https://api.dicebear.com/7.x/initials/svg?seed=omni",
		Priority:  domain.PriorityHigh,
	}); err != nil {
		return err
	}

	walletStatus := "Pending KYC approval"
	walletKind := domain.KindInfo
	if event.KYCStatus == "approved" {
		walletStatus = "Active"
		walletKind = domain.KindSuccess
	}
	if _, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Wallet Created",
		Content:   fmt.Sprintf("Your primary wallet has been created. Status: %s", walletStatus),
		Category:  domain.CategoryWallet,
		Kind:      walletKind,
		Icon:      iconURL("wallet"),
		Priority:  domain.PriorityNormal,
	}); err != nil {
		return err
	}

	switch event.KYCStatus {
	case "pending":
		_, err := h.svc.Create(ctx, model.Notification{
			AccountID: event.AccountID,
			Label:     "KYC Verification Pending",
			Content:   "Please complete your KYC verification to activate full account features.",
			Category:  domain.CategoryKYC,
			Kind:      domain.KindAction,
			Icon:      iconURL("kyc"),
			Priority:  domain.PriorityHigh,
			ActionURL: "/kyc/verify",
		})
		return err
	case "approved":
		_, err := h.svc.Create(ctx, model.Notification{
			AccountID: event.AccountID,
			Label:     "KYC Approved",
			Content:   "Your KYC verification has been approved. You now have full access to all features!",
			Category:  domain.CategoryKYC,
			Kind:      domain.KindSuccess,
			Icon:      iconURL("verified"),
			Priority:  domain.PriorityHigh,
		})
		return err
	}
	return nil
}

func (h *Handlers) handleAccountDeletion(ctx context.Context, payload []byte) error {
	var event accountDeletionEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Account Deletion Scheduled",
		Content:   fmt.Sprintf("Your account is scheduled for deletion on %s. You can cancel this at any time.", event.ScheduledDeletion),
		Category:  domain.CategorySecurity,
		Kind:      domain.KindWarning,
		Icon:      iconURL("warning"),
		Priority:  domain.PriorityHigh,
		ActionURL: "/account/cancel-deletion",
	})
	return err
}

func (h *Handlers) handleContactRequestSent(ctx context.Context, payload []byte) error {
	var event contactRequestSentEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AddresseeID,
		Label:     "New Contact Request",
		Content:   fmt.Sprintf("You received a contact request from @%s", event.OmniTag),
		Category:  domain.CategoryContact,
		Kind:      domain.KindAction,
		Icon:      iconURL("contact"),
		Priority:  domain.PriorityNormal,
		ActionURL: "/contacts/pending",
	})
	return err
}

func (h *Handlers) handleContactRequestAccepted(ctx context.Context, payload []byte) error {
	var event contactRequestAcceptedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.RequesterID,
		Label:     "Contact Request Accepted",
		Content:   "Your contact request has been accepted!",
		Category:  domain.CategoryContact,
		Kind:      domain.KindSuccess,
		Icon:      iconURL("success"),
		Priority:  domain.PriorityNormal,
		ActionURL: "/contacts",
	})
	return err
}

func (h *Handlers) handleContactRequestRejected(ctx context.Context, payload []byte) error {
	var event contactRequestRejectedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.RequesterID,
		Label:     "Contact Request Declined",
		Content:   "Your contact request was declined.",
		Category:  domain.CategoryContact,
		Kind:      domain.KindInfo,
		Icon:      iconURL("info"),
		Priority:  domain.PriorityLow,
	})
	return err
}

func (h *Handlers) handleContactBlocked(ctx context.Context, payload []byte) error {
	var event contactBlockedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	// The party that did the blocking is not notified.
	notifyAccountID := event.RequesterID
	if event.BlockedBy == event.RequesterID {
		notifyAccountID = event.AddresseeID
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: notifyAccountID,
		Label:     "Contact Unavailable",
		Content:   "A contact is no longer available.",
		Category:  domain.CategoryContact,
		Kind:      domain.KindWarning,
		Icon:      iconURL("warning"),
		Priority:  domain.PriorityLow,
	})
	return err
}

func (h *Handlers) handleVirtualCardCreated(ctx context.Context, payload []byte) error {
	var event virtualCardCreatedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Virtual Card Created",
		Content:   fmt.Sprintf("Your new %s card ending in %s is ready to use!", event.CardType, event.LastFourDigits),
		Category:  domain.CategoryCard,
		Kind:      domain.KindSuccess,
		Icon:      iconURL("card"),
		Priority:  domain.PriorityHigh,
	})
	return err
}

func (h *Handlers) handleVirtualCardBlocked(ctx context.Context, payload []byte) error {
	var event virtualCardBlockedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Card Blocked",
		Content:   fmt.Sprintf("Your card has been blocked. Reason: %s", event.BlockReason),
		Category:  domain.CategoryCard,
		Kind:      domain.KindWarning,
		Icon:      iconURL("blocked"),
		Priority:  domain.PriorityHigh,
	})
	return err
}

func (h *Handlers) handleVirtualCardToppedUp(ctx context.Context, payload []byte) error {
	var event virtualCardToppedUpEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Card Topped Up",
		Content:   fmt.Sprintf("$%.2f added to your card. New balance: $%.2f", event.Amount, event.NewBalance),
		Category:  domain.CategoryCard,
		Kind:      domain.KindSuccess,
		Icon:      iconURL("money"),
		Priority:  domain.PriorityNormal,
	})
	return err
}

func (h *Handlers) handlePhysicalCardRequested(ctx context.Context, payload []byte) error {
	var event physicalCardRequestedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Physical Card Request Received",
		Content:   fmt.Sprintf("Your physical card will be delivered to %s. Processing time: 7-10 business days.", event.DeliveryCity),
		Category:  domain.CategoryCard,
		Kind:      domain.KindInfo,
		Icon:      iconURL("delivery"),
		Priority:  domain.PriorityNormal,
	})
	return err
}

func (h *Handlers) handleVirtualCardDeleted(ctx context.Context, payload []byte) error {
	var event virtualCardDeletedEvent
	if err := decode(payload, &event); err != nil {
		return err
	}

	_, err := h.svc.Create(ctx, model.Notification{
		AccountID: event.AccountID,
		Label:     "Card Deleted",
		Content:   fmt.Sprintf("Your card ending in %s has been permanently deleted.", event.LastFourDigits),
		Category:  domain.CategoryCard,
		Kind:      domain.KindInfo,
		Icon:      iconURL("delete"),
		Priority:  domain.PriorityLow,
	})
	return err
}

func iconURL(seed string) string {
	return "https://api.dicebear.com/7.x/icons/svg?seed=" + seed
}
