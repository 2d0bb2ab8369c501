package session

// Gate names used in metrics and logs.
const (
	GateAuthenticated = "authenticated"
	GateAdmin         = "admin"
)

// Decision is the outcome of a route gate. Redirect is set only on denial.
type Decision struct {
	Allowed  bool
	Redirect string
}

// GateState is the part of a Store consulted by route gates.
type GateState interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// AuthenticatedGate permits entry iff the session is authenticated, and
// otherwise sends the visitor to loginPath.
func AuthenticatedGate(s GateState, loginPath string) Decision {
	if s != nil && s.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: loginPath}
}

// AdminGate permits entry iff the session holds an admin identity, and
// otherwise sends the visitor to fallbackPath.
func AdminGate(s GateState, fallbackPath string) Decision {
	if s != nil && s.IsAdmin() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: fallbackPath}
}
