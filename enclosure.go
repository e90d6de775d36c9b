package linecsv

const (
	// Comma is the field delimiter.
	Comma byte = ','
	// Quote encloses fields that contain delimiters, quotes or line breaks.
	Quote byte = '"'
)

// EnclosureState tracks the quote characters seen since the start of the current field.
type EnclosureState uint8

const (
	// EnclosureNone means the decoder is outside any quoted span.
	EnclosureNone EnclosureState = iota
	// EnclosureEntered means an opening quote was consumed and the span is still open.
	EnclosureEntered
	// EnclosureExited means a quote was consumed inside the span. The next byte decides
	// whether it closed the span or escaped a literal quote.
	EnclosureExited
)

func (s EnclosureState) String() string {
	switch s {
	case EnclosureNone:
		return "none"
	case EnclosureEntered:
		return "entered"
	case EnclosureExited:
		return "exited"
	default:
		return "invalid"
	}
}

// Action is the effect a single input byte has on the field being assembled.
type Action uint8

const (
	// ActionNone consumes the byte without touching the pending field.
	ActionNone Action = iota
	// ActionAppend appends the byte itself to the pending field.
	ActionAppend
	// ActionAppendQuote appends a literal quote for an escaped "" pair.
	ActionAppendQuote
	// ActionFinishField closes the pending field and starts a new one.
	ActionFinishField
)

// Transition returns the state that follows s after consuming c, and what the
// caller must do with c.
func Transition(s EnclosureState, c byte) (EnclosureState, Action) {
	switch c {
	case Comma:
		if s != EnclosureEntered {
			return EnclosureNone, ActionFinishField
		}
	case Quote:
		switch s {
		case EnclosureExited:
			return EnclosureEntered, ActionAppendQuote
		case EnclosureEntered:
			return EnclosureExited, ActionNone
		default:
			return EnclosureEntered, ActionNone
		}
	}

	if s == EnclosureExited {
		return EnclosureNone, ActionAppend
	}
	return s, ActionAppend
}
