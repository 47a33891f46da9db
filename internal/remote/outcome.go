package remote

import "strings"

// Outcome is the explicit contract for a trigger response. The server still
// answers with free text; the three observable outcomes are recovered from
// it by lowercase substring, and that classification must not change while
// deployed servers speak the free-text protocol.
type Outcome int

const (
	OutcomeNone    Outcome = iota // no membership change reported
	OutcomeStarted                // entered the session
	OutcomeEnded                  // ended or left the session
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:    "none",
	OutcomeStarted: "started",
	OutcomeEnded:   "ended",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// OutcomeFromText classifies a trigger response body.
func OutcomeFromText(body string) Outcome {
	s := strings.ToLower(body)
	switch {
	case strings.Contains(s, "started"):
		return OutcomeStarted
	case strings.Contains(s, "ended"), strings.Contains(s, "left"):
		return OutcomeEnded
	default:
		return OutcomeNone
	}
}
