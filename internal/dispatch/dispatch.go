// Package dispatch maps an argument vector to exactly one verb handler.
package dispatch

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"
)

// Verb names one operation. Matching is exact: no aliases, prefixes or case folding.
type Verb string

const (
	VerbCheckout Verb = "checkout"
	VerbClose    Verb = "close"
	VerbComment  Verb = "comment"
	VerbCreate   Verb = "create"
	VerbHelp     Verb = "help"
	VerbList     Verb = "list"
	VerbLogin    Verb = "login"
	VerbOpen     Verb = "open"
	VerbPatch    Verb = "patch"
	VerbShow     Verb = "show"
)

// DefaultVerb runs when the argument vector is empty.
const DefaultVerb = VerbList

// FallbackVerb receives the full argument vector when the verb is unknown.
const FallbackVerb = VerbHelp

// Verbs lists every supported verb in the order usage presents them.
var Verbs = []Verb{
	VerbList, VerbShow, VerbPatch, VerbCheckout, VerbComment,
	VerbCreate, VerbClose, VerbOpen, VerbLogin, VerbHelp,
}

// Handler performs one operation. The returned status becomes the process
// exit status when err is nil.
type Handler func(ctx context.Context, args []string) (int, error)

// Route is the outcome of matching an argument vector.
type Route struct {
	Args []string
	Verb Verb
}

// Resolve picks the verb and the arguments it receives.
func Resolve(args []string) Route {
	if len(args) == 0 {
		return Route{Verb: DefaultVerb, Args: []string{}}
	}
	verb := Verb(args[0])
	if IsKnown(verb) {
		return Route{Verb: verb, Args: args[1:]}
	}
	return Route{Verb: FallbackVerb, Args: args}
}

// IsKnown reports whether verb names a supported operation.
func IsKnown(verb Verb) bool {
	for _, v := range Verbs {
		if v == verb {
			return true
		}
	}
	return false
}

// Dispatcher holds a handler for every verb.
type Dispatcher struct {
	handlers map[Verb]Handler
	log      *clog.Logger
}

// New returns a Dispatcher; every verb in Verbs must have a handler.
func New(handlers map[Verb]Handler) (*Dispatcher, error) {
	for _, v := range Verbs {
		if handlers[v] == nil {
			return nil, fmt.Errorf("no handler registered for verb %q", v)
		}
	}
	return &Dispatcher{
		handlers: handlers,
		log:      clog.Default().WithPrefix("dispatch"),
	}, nil
}

// Dispatch invokes exactly one handler for args.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) (int, error) {
	route := Resolve(args)
	d.log.Debug("Dispatching", "verb", route.Verb, "args", route.Args)
	return d.handlers[route.Verb](ctx, route.Args)
}
