package gate

// ActionKind is what the gate does with a request.
type ActionKind int

const (
	// ActionAllow passes the request through unchanged.
	ActionAllow ActionKind = iota
	// ActionRedirect sends the caller to Action.Location.
	ActionRedirect
)

// Action is the single outcome of a gate decision.
type Action struct {
	Kind     ActionKind
	Location string
}

// Allow returns the pass-through action.
func Allow() Action { return Action{Kind: ActionAllow} }

// Redirect returns a redirect to location.
func Redirect(location string) Action { return Action{Kind: ActionRedirect, Location: location} }

// String renders the action as ALLOW or REDIRECT(<location>).
func (a Action) String() string {
	if a.Kind == ActionRedirect {
		return "REDIRECT(" + a.Location + ")"
	}
	return "ALLOW"
}

// Decide maps a path class and session presence to an action:
//
//	protected, no session -> REDIRECT(/login)
//	login, session        -> REDIRECT(/)
//	anything else         -> ALLOW
func Decide(class PathClass, authenticated bool) Action {
	switch {
	case class == PathBypass:
		return Allow()
	case class == PathProtected && !authenticated:
		return Redirect(LoginPath)
	case class == PathLogin && authenticated:
		return Redirect(HomePath)
	default:
		return Allow()
	}
}
