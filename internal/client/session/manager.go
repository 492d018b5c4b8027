// Package session owns the authenticated identity of the lenderctl terminal:
// the token/email/role triad, its persistence, and the synchronous gates
// every protected operation runs through.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linkledger/lenderctl/internal/common"
	"github.com/linkledger/lenderctl/internal/dbx"
)

// Roles recognized by the records API.
const (
	RoleAdmin  = "admin"
	RoleLender = "lender"
)

const (
	keyToken = "token"
	keyEmail = "email"
	keyRole  = "role"
)

// adminEmails is a legacy compatibility shim: early deployments issued
// tokens without a role claim, and these two operator addresses were the
// only administrators. It is consulted last, never ahead of a server-
// asserted role.
var adminEmails = []string{
	"admin@linkledger.co.bw",
	"ops@linkledger.co.bw",
}

// Session is the client-held triad gating protected operations. All three
// fields are set together and cleared together; a partial triad is never
// valid.
type Session struct {
	Token string
	Email string
	Role  string
}

// AuthError reports a rejected credential exchange. Message carries the
// server's wording when it provided one.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// Exchanger performs an unauthenticated JSON exchange with the records API.
// The gateway satisfies it.
type Exchanger interface {
	Exchange(ctx context.Context, method, path string, body, out any) (int, string, error)
}

// Manager owns the current session. It is safe for use from the REPL
// goroutine and the gateway's unauthorized hook.
type Manager struct {
	db  *sql.DB
	api Exchanger

	mu  sync.RWMutex
	cur *Session
}

func NewManager(db *sql.DB, api Exchanger) *Manager {
	return &Manager{db: db, api: api}
}

// SetAPI installs the exchanger after construction. The manager and gateway
// reference each other (the gateway reads tokens, the manager logs in
// through the gateway), so one side is wired late.
func (m *Manager) SetAPI(api Exchanger) {
	m.api = api
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Establish exchanges credentials with the authentication endpoint and, on
// success, stores the full triad atomically. The role comes from the server's
// claim when present; otherwise from the role claim inside the token;
// otherwise from the legacy email shim.
func (m *Manager) Establish(ctx context.Context, email string, password []byte) (Session, error) {
	var resp loginResponse
	status, msg, err := m.api.Exchange(ctx, http.MethodPost, "/api/auth/login",
		loginRequest{Email: email, Password: string(password)}, &resp)
	if err != nil {
		return Session{}, err
	}
	if status != http.StatusOK {
		return Session{}, &AuthError{Message: msg}
	}

	s := Session{Token: resp.Token, Email: resp.Email}
	if s.Email == "" {
		s.Email = email
	}

	s.Role = resp.Role
	if s.Role == "" {
		s.Role = roleFromToken(resp.Token)
	}
	if s.Role == "" {
		s.Role = legacyRoleForEmail(s.Email)
	}

	if err := m.persist(ctx, s); err != nil {
		return Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.cur = &s
	m.mu.Unlock()

	return s, nil
}

// roleFromToken reads the role claim out of a JWT access token without
// validating the signature. The client never verifies tokens; it only
// derives display state from them.
func roleFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// legacyRoleForEmail is the email-based fallback used when neither the login
// response nor the token carries a role.
func legacyRoleForEmail(email string) string {
	for _, admin := range adminEmails {
		if strings.EqualFold(email, admin) {
			return RoleAdmin
		}
	}
	return RoleLender
}

func (m *Manager) persist(ctx context.Context, s Session) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := NewSQLiteStore(tx)
		if err := store.Set(ctx, keyToken, s.Token); err != nil {
			return err
		}
		if err := store.Set(ctx, keyEmail, s.Email); err != nil {
			return err
		}
		return store.Set(ctx, keyRole, s.Role)
	})
}

// Load restores the triad persisted by a previous run. A partial triad is
// treated as no session and wiped.
func (m *Manager) Load(ctx context.Context) error {
	store := NewSQLiteStore(m.db)

	token, err := store.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	email, err := store.Get(ctx, keyEmail)
	if err != nil {
		return err
	}
	role, err := store.Get(ctx, keyRole)
	if err != nil {
		return err
	}

	if token == "" || email == "" || role == "" {
		return m.Destroy(ctx)
	}

	m.mu.Lock()
	m.cur = &Session{Token: token, Email: email, Role: role}
	m.mu.Unlock()
	return nil
}

// Require returns the active session, or common.ErrNoSession. It is
// synchronous and never touches the network.
func (m *Manager) Require() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return Session{}, common.ErrNoSession
	}
	return *m.cur, nil
}

// RequireRole gates a protected view on the session's role. The comparison
// is case-insensitive.
func (m *Manager) RequireRole(role string) error {
	s, err := m.Require()
	if err != nil {
		return err
	}
	if !strings.EqualFold(s.Role, role) {
		return common.ErrRoleDenied
	}
	return nil
}

// Token reports the stored credential for outbound requests. The gateway
// uses it as its TokenSource.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return "", false
	}
	return m.cur.Token, true
}

// Destroy clears the triad atomically, in memory and on disk. Idempotent.
func (m *Manager) Destroy(ctx context.Context) error {
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()

	return NewSQLiteStore(m.db).Clear(ctx)
}
