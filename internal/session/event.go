package session

import "time"

// EventType classifies a session transition surfaced to subscribers.
type EventType int

const (
	EventActivated        EventType = iota // activation succeeded
	EventActivationFailed                  // activation rejected, reason set
	EventEntered                           // joined the whisper session
	EventLeft                              // server reported a leave while not in-session
	EventExited                            // left the whisper session
	EventTriggerFailed                     // trigger call failed, reason set
	EventRevoked                           // server revoked the lead role
)

var eventNames = map[EventType]string{
	EventActivated:        "activated",
	EventActivationFailed: "activation_failed",
	EventEntered:          "entered",
	EventLeft:             "left",
	EventExited:           "exited",
	EventTriggerFailed:    "trigger_failed",
	EventRevoked:          "revoked",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event carries one transition to downstream subscribers (UI, status feed).
// State is the controller state after the transition. Reason is a
// user-facing cause for the failure events, empty otherwise.
type Event struct {
	Type   EventType
	State  State
	Reason string
	At     time.Time
}
