package translation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the provider has no translation for the word.
	ErrNotFound = errors.New("translation not found")

	// ErrTransport means the provider could not be reached or failed.
	ErrTransport = errors.New("translation transport failure")
)

// Kind classifies a provider call.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not found"
	case KindTransport:
		return "transport error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the result of one provider call: one or more candidate
// translations, a lookup miss, or a transport failure carrying its detail.
type Outcome struct {
	Kind  Kind
	Texts []string
	Err   error
}

// OK wraps the candidates of a successful lookup, best first.
func OK(texts ...string) Outcome {
	return Outcome{Kind: KindOK, Texts: texts}
}

// NotFound records that the provider knows no translation for word.
func NotFound(provider, word string) Outcome {
	return Outcome{
		Kind: KindNotFound,
		Err:  fmt.Errorf("%s: %w: %q", provider, ErrNotFound, word),
	}
}

// TransportError records a failed call.
func TransportError(provider string, err error) Outcome {
	return Outcome{
		Kind: KindTransport,
		Err:  fmt.Errorf("%s: %w: %v", provider, ErrTransport, err),
	}
}

// OK reports whether the call produced a translation.
func (o Outcome) OK() bool {
	return o.Kind == KindOK
}

// Text joins the candidates with Separator. A single candidate is
// returned verbatim.
func (o Outcome) Text() string {
	return strings.Join(o.Texts, Separator)
}
