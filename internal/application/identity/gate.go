package identity

import (
	"context"
	"sync"

	"github.com/portfolio/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// GateState is where a dashboard session stands
type GateState int

const (
	// GateChecking means the session has not been resolved yet and nothing
	// should be shown.
	GateChecking GateState = iota
	GateUnauthenticated
	GateAuthenticated
)

func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateUnauthenticated:
		return "unauthenticated"
	case GateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Authenticator resolves and ends sessions
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
	Logout(ctx context.Context, input LogoutInput) error
}

// Gate guards protected dashboard output behind a resolved session.
type Gate struct {
	authn  Authenticator
	logger *zap.Logger

	mu     sync.RWMutex
	state  GateState
	token  string
	claims *auth.Claims
}

// NewGate creates a gate in the checking state
func NewGate(authn Authenticator, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{authn: authn, logger: logger, state: GateChecking}
}

// Resolve re-enters checking and settles on authenticated or
// unauthenticated for token.
func (g *Gate) Resolve(ctx context.Context, token string) GateState {
	g.mu.Lock()
	g.state = GateChecking
	g.token = ""
	g.claims = nil
	g.mu.Unlock()

	if token == "" {
		return g.settle(GateUnauthenticated, "", nil)
	}
	claims, err := g.authn.Authenticate(ctx, token)
	if err != nil {
		g.logger.Debug("Session rejected", zap.Error(err))
		return g.settle(GateUnauthenticated, "", nil)
	}
	return g.settle(GateAuthenticated, token, claims)
}

func (g *Gate) settle(state GateState, token string, claims *auth.Claims) GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.token = token
	g.claims = claims
	return state
}

// State returns the current state
func (g *Gate) State() GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Claims returns the session claims, nil unless authenticated
func (g *Gate) Claims() *auth.Claims {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.claims
}

// SignOut revokes the session and moves to unauthenticated. The state
// changes even when revocation fails.
func (g *Gate) SignOut(ctx context.Context) error {
	g.mu.RLock()
	token := g.token
	g.mu.RUnlock()

	var err error
	if token != "" {
		err = g.authn.Logout(ctx, LogoutInput{AccessToken: token})
	}
	g.settle(GateUnauthenticated, "", nil)
	return err
}

// Guard runs protected only when authenticated and login only when
// unauthenticated. While checking it runs neither.
func (g *Gate) Guard(protected, login func()) {
	switch g.State() {
	case GateAuthenticated:
		protected()
	case GateUnauthenticated:
		login()
	}
}
