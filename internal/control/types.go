package control

import (
	"strconv"
	"strings"
)

// Action is a single container lifecycle action understood by the dispatcher.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRemove  Action = "remove"
	ActionKill    Action = "kill"
	ActionPause   Action = "pause"
	ActionUnpause Action = "unpause"
	ActionRestart Action = "restart"
)

// knownActions is the fixed action vocabulary. Anything else is rejected
// before a remote call is made.
var knownActions = map[Action]bool{
	ActionStart:   true,
	ActionStop:    true,
	ActionRemove:  true,
	ActionKill:    true,
	ActionPause:   true,
	ActionUnpause: true,
	ActionRestart: true,
}

// DefaultKillSignal is sent when a kill request carries no explicit signal.
const DefaultKillSignal = "SIGKILL"

// ActionRequest describes one container action. EndpointID 0 means "resolve
// the endpoint for me". Option fields apply only to the actions that use
// them; they are ignored (but still type-checked) otherwise.
type ActionRequest struct {
	Action      Action
	ContainerID string
	EndpointID  int

	// Force and RemoveVolumes apply to ActionRemove. They are appended to
	// the delete query only when true.
	Force         bool
	RemoveVolumes bool

	// Signal applies to ActionKill. Empty means DefaultKillSignal.
	Signal string

	// TimeoutMS applies to ActionRestart. Nil means no timeout query
	// parameter; a negative or non-finite value rejects the request.
	TimeoutMS *float64
}

// StackRef identifies a stack either by numeric id or by name. Construct it
// once at the entry boundary; downstream code never re-inspects raw input.
type StackRef struct {
	id   int
	name string
}

// StackByID returns a reference to the stack with the given numeric id.
func StackByID(id int) StackRef {
	return StackRef{id: id}
}

// StackByName returns a reference to the stack with the given name.
func StackByName(name string) StackRef {
	return StackRef{name: strings.TrimSpace(name)}
}

// ParseStackRef interprets a raw CLI argument as a stack reference: all-digit
// input is a numeric id, anything else a name.
func ParseStackRef(arg string) StackRef {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.Atoi(arg); err == nil {
		return StackByID(id)
	}
	return StackByName(arg)
}

// Valid reports whether the reference carries a usable id or name.
func (r StackRef) Valid() bool {
	return r.id > 0 || r.name != ""
}

// ByID reports whether the reference is numeric, and if so which id.
func (r StackRef) ByID() (int, bool) {
	return r.id, r.id > 0
}

// Name returns the referenced name, or "" for numeric references.
func (r StackRef) Name() string {
	return r.name
}

func (r StackRef) String() string {
	if r.id > 0 {
		return strconv.Itoa(r.id)
	}
	return r.name
}

// Stack is one stack entry as returned by the service. Fields beyond the id
// and name are passed through for display and are otherwise opaque here.
type Stack struct {
	ID         int    `json:"Id"`
	Name       string `json:"Name"`
	EndpointID int    `json:"EndpointId"`
	Type       int    `json:"Type"`
	Status     int    `json:"Status"`
}

// Endpoint is one managed execution environment.
type Endpoint struct {
	ID     int    `json:"Id"`
	Name   string `json:"Name"`
	URL    string `json:"URL"`
	Type   int    `json:"Type"`
	Status int    `json:"Status"`
}

// Status is the service's version/identity document.
type Status struct {
	Version    string `json:"Version"`
	InstanceID string `json:"InstanceID"`
}
