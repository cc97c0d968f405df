// Package lookup implements the symbol lookup view as an explicit state
// machine. Transition is pure: it returns the next state and, when a request
// must be issued, a Fetch effect for the caller to execute.
package lookup

import (
	"errors"
	"strings"

	"github.com/aristath/tickerview/internal/analysis"
)

// Phase is the display phase of the view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ErrorKind classifies the failure shown in PhaseError.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorTransport
	ErrorLogical
	ErrorMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorTransport:
		return "transport"
	case ErrorLogical:
		return "logical"
	case ErrorMalformed:
		return "malformed"
	default:
		return "none"
	}
}

// User-facing messages for errors that carry no message of their own.
const (
	TransportMessage = "Data could not be retrieved."
	MalformedMessage = "Malformed response from analysis service."
)

// State is the complete view state.
type State struct {
	Phase        Phase
	ErrorKind    ErrorKind
	Message      string
	Result       *analysis.Result
	SearchText   string // uncommitted input
	ActiveSymbol string // symbol being queried or displayed
	Seq          uint64 // sequence number of the latest issued fetch
}

// New returns the state before mount, loading defaultSymbol.
func New(defaultSymbol string) State {
	return State{
		Phase:        PhaseLoading,
		ActiveSymbol: Normalize(defaultSymbol),
	}
}

// Normalize upper-cases and trims a ticker symbol.
func Normalize(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// Event is an input to Transition.
type Event interface {
	event()
}

// Mounted starts the first fetch cycle for the active symbol.
type Mounted struct{}

// Edited replaces the uncommitted search text.
type Edited struct {
	Text string
}

// Submitted commits the current search text.
type Submitted struct{}

// FetchCompleted carries the outcome of the fetch with sequence number Seq.
type FetchCompleted struct {
	Seq    uint64
	Result *analysis.Result
	Err    error
}

func (Mounted) event()        {}
func (Edited) event()         {}
func (Submitted) event()      {}
func (FetchCompleted) event() {}

// Fetch asks the caller to request the analysis of Symbol and to report the
// outcome as a FetchCompleted with the same Seq.
type Fetch struct {
	Seq    uint64
	Symbol string
}

// Transition applies ev to s. The returned effect is nil when no request
// must be issued.
func Transition(s State, ev Event) (State, *Fetch) {
	switch ev := ev.(type) {
	case Mounted:
		return s.startFetch()

	case Edited:
		s.SearchText = ev.Text
		return s, nil

	case Submitted:
		symbol := Normalize(s.SearchText)
		if symbol == "" {
			return s, nil
		}
		if symbol == s.ActiveSymbol && s.Seq > 0 {
			// The symbol did not change, so no new cycle starts.
			return s, nil
		}
		s.ActiveSymbol = symbol
		return s.startFetch()

	case FetchCompleted:
		if ev.Seq != s.Seq || s.Phase != PhaseLoading {
			return s, nil
		}
		return s.complete(ev), nil
	}
	return s, nil
}

func (s State) startFetch() (State, *Fetch) {
	s.Seq++
	s.Phase = PhaseLoading
	s.ErrorKind = ErrorNone
	s.Message = ""
	s.Result = nil
	return s, &Fetch{Seq: s.Seq, Symbol: s.ActiveSymbol}
}

func (s State) complete(ev FetchCompleted) State {
	if ev.Err == nil && ev.Result == nil {
		ev.Err = &analysis.MalformedError{Reason: "empty result"}
	}
	if ev.Err != nil {
		s.Phase = PhaseError
		s.ErrorKind = Classify(ev.Err)
		s.Message = MessageFor(ev.Err)
		return s
	}
	s.Phase = PhaseLoaded
	s.Result = ev.Result
	return s
}

// Classify maps a fetch error onto its kind. Anything that is neither a
// logical nor a malformed-response error counts as a transport failure.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorNone
	}
	var logical *analysis.LogicalError
	if errors.As(err, &logical) {
		return ErrorLogical
	}
	var bad *analysis.MalformedError
	if errors.As(err, &bad) {
		return ErrorMalformed
	}
	return ErrorTransport
}

// MessageFor returns the user-facing message for a fetch error.
func MessageFor(err error) string {
	switch Classify(err) {
	case ErrorNone:
		return ""
	case ErrorLogical:
		var logical *analysis.LogicalError
		errors.As(err, &logical)
		return logical.Message
	case ErrorMalformed:
		return MalformedMessage
	default:
		return TransportMessage
	}
}

// Loading reports whether a fetch is outstanding.
func (s State) Loading() bool { return s.Phase == PhaseLoading }
