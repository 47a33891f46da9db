package session

import "encoding/json"

// State is the client-side session state. It is owned by the Controller
// goroutine and only ever changes there: on a matched hotkey firing, on a
// remote call's outcome, or on a poll verdict.
type State int

const (
	Inactive State = iota
	Activated
	InSession
)

var stateNames = map[State]string{
	Inactive:  "inactive",
	Activated: "activated",
	InSession: "in_session",
}

var stateFromName = map[string]State{
	"inactive":   Inactive,
	"activated":  Activated,
	"in_session": InSession,
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := stateFromName[name]; ok {
		*s = v
	}
	return nil
}
