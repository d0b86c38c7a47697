package event

import "time"

const PasscodeRequestedDestination string = "passcode_requested"
const PasscodeRequestedDestinationConsumerNotification string = "passcode_requested_notification"

// PasscodeRequestedMessage asks the notification module to mail a passcode.
// EventID is unique per send and keys consumer idempotency.
type PasscodeRequestedMessage struct {
	EventID          string    `json:"event_id"`
	Email            string    `json:"email"`
	Code             string    `json:"code"`
	ExpiresInMinutes int       `json:"expires_in_minutes"`
	RequestedAt      time.Time `json:"requested_at"`
}
