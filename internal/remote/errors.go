package remote

import (
	"errors"
	"fmt"
)

// Kind classifies an Activate failure into a user-facing cause.
type Kind int

const (
	KindNetwork      Kind = iota // connectivity / transport failure
	KindUnauthorized             // bad or expired credential
	KindForbidden                // credential valid but not eligible for a session
	KindServer                   // server-side fault
)

// Error is a classified remote-call failure. Status is the HTTP status code
// when one was received, 0 for transport errors.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "unauthorized: " + e.Message
	case KindForbidden:
		return "forbidden: " + e.Message
	case KindServer:
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	default:
		return "network: " + e.Message
	}
}

// Reason renders an error as a short reason string for user display.
func Reason(err error) string {
	var re *Error
	if !errors.As(err, &re) {
		return err.Error()
	}
	switch re.Kind {
	case KindUnauthorized:
		return "Auth token was rejected. Check that it has not expired."
	case KindForbidden:
		return "You are not eligible to activate as Team-Lead."
	case KindServer:
		return fmt.Sprintf("Server fault (%d). Try again shortly.", re.Status)
	default:
		return "Could not reach the server. Check your connection."
	}
}

func classifyStatus(status int, body string) *Error {
	e := &Error{Status: status, Message: body}
	switch {
	case status == 401:
		e.Kind = KindUnauthorized
	case status == 403:
		e.Kind = KindForbidden
	default:
		e.Kind = KindServer
	}
	return e
}
