package hotkey

// CaptureStage identifies where the two-press setup protocol currently is.
type CaptureStage int

const (
	AwaitingFirst CaptureStage = iota
	AwaitingConfirm
	CaptureComplete
)

// CaptureResult classifies the effect of offering a token to the capture
// state machine.
type CaptureResult int

const (
	CaptureIgnored   CaptureResult = iota // machine already complete
	CaptureFirst                          // first press recorded, confirmation pending
	CaptureMismatch                       // confirmation differed, restarting from scratch
	CaptureConfirmed                      // binding confirmed, machine terminal
)

// Capture drives the two-press "capture and confirm" setup protocol.
// Requiring the same token twice keeps a single mis-press from becoming a
// permanent binding. The zero value is ready to use.
type Capture struct {
	stage CaptureStage
	first Token
}

func (c *Capture) Stage() CaptureStage { return c.stage }

// Binding returns the confirmed token. Only meaningful once the stage is
// CaptureComplete.
func (c *Capture) Binding() Token { return c.first }

// Offer feeds one accepted token to the machine and returns what happened.
func (c *Capture) Offer(t Token) CaptureResult {
	switch c.stage {
	case AwaitingFirst:
		c.first = t
		c.stage = AwaitingConfirm
		return CaptureFirst
	case AwaitingConfirm:
		if t == c.first {
			c.stage = CaptureComplete
			return CaptureConfirmed
		}
		c.first = ""
		c.stage = AwaitingFirst
		return CaptureMismatch
	default:
		return CaptureIgnored
	}
}
