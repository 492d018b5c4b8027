package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/linkledger/lenderctl/internal/common"
)

var dbSeq int

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:sessiontest%d?mode=memory&cache=shared", dbSeq)
	db, err := OpenDB(context.Background(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeAPI struct {
	status int
	msg    string
	resp   loginResponse
	err    error

	gotPath string
	gotBody any
}

func (f *fakeAPI) Exchange(_ context.Context, _ string, path string, body, out any) (int, string, error) {
	f.gotPath = path
	f.gotBody = body
	if f.err != nil {
		return 0, "", f.err
	}
	if out != nil && f.status == 200 {
		*(out.(*loginResponse)) = f.resp
	}
	return f.status, f.msg, nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestEstablish_ServerAssertedRole(t *testing.T) {
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "opaque-token", Email: "x@y.bw", Role: "lender"}}
	m := NewManager(setupDB(t), api)

	s, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "lender", s.Role)
	require.Equal(t, "/api/auth/login", api.gotPath)

	got, err := m.Require()
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestEstablish_RoleFromTokenClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u1", "role": "admin"})
	api := &fakeAPI{status: 200, resp: loginResponse{Token: token, Email: "someone@lender.bw"}}
	m := NewManager(setupDB(t), api)

	s, err := m.Establish(context.Background(), "someone@lender.bw", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, s.Role)
}

func TestEstablish_LegacyAdminEmailFallback(t *testing.T) {
	// No role in the response and the token is opaque: the email shim is the
	// last resort, matched case-insensitively.
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "not-a-jwt"}}
	m := NewManager(setupDB(t), api)

	s, err := m.Establish(context.Background(), "Admin@LinkLedger.co.bw", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, s.Role)
	require.Equal(t, "Admin@LinkLedger.co.bw", s.Email)
}

func TestEstablish_UnknownEmailIsLender(t *testing.T) {
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "not-a-jwt"}}
	m := NewManager(setupDB(t), api)

	s, err := m.Establish(context.Background(), "shop@lender.bw", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, RoleLender, s.Role)
}

func TestEstablish_RejectedSurfacesServerMessage(t *testing.T) {
	api := &fakeAPI{status: 401, msg: "wrong password"}
	m := NewManager(setupDB(t), api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "wrong password", authErr.Message)

	_, err = m.Require()
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestEstablish_RejectedGenericMessage(t *testing.T) {
	api := &fakeAPI{status: 500}
	m := NewManager(setupDB(t), api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "authentication failed", authErr.Error())
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "tk", Email: "x@y.bw", Role: "Admin"}}
	m := NewManager(setupDB(t), api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, m.RequireRole("admin"))
	require.NoError(t, m.RequireRole("ADMIN"))
	require.ErrorIs(t, m.RequireRole("lender"), common.ErrRoleDenied)
}

func TestDestroy_ClearsTriadAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "tk", Email: "x@y.bw", Role: "lender"}}
	m := NewManager(db, api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, m.Destroy(context.Background()))
	require.NoError(t, m.Destroy(context.Background()))

	_, err = m.Require()
	require.ErrorIs(t, err, common.ErrNoSession)
	_, ok := m.Token()
	require.False(t, ok)

	// Cleared on disk too: a fresh manager over the same DB finds nothing.
	fresh := NewManager(db, api)
	require.NoError(t, fresh.Load(context.Background()))
	_, err = fresh.Require()
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLoad_RestoresPersistedSession(t *testing.T) {
	db := setupDB(t)
	api := &fakeAPI{status: 200, resp: loginResponse{Token: "tk", Email: "x@y.bw", Role: "lender"}}
	m := NewManager(db, api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	require.NoError(t, err)

	fresh := NewManager(db, api)
	require.NoError(t, fresh.Load(context.Background()))
	s, err := fresh.Require()
	require.NoError(t, err)
	require.Equal(t, "tk", s.Token)
	require.Equal(t, "x@y.bw", s.Email)
	require.Equal(t, "lender", s.Role)
}

func TestLoad_PartialTriadIsWiped(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	require.NoError(t, store.Set(context.Background(), keyToken, "orphan-token"))

	m := NewManager(db, &fakeAPI{})
	require.NoError(t, m.Load(context.Background()))

	_, err := m.Require()
	require.ErrorIs(t, err, common.ErrNoSession)

	token, err := store.Get(context.Background(), keyToken)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestEstablish_ConnectivityErrorPassesThrough(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	api := &fakeAPI{err: boom}
	m := NewManager(setupDB(t), api)

	_, err := m.Establish(context.Background(), "x@y.bw", []byte("pw"))
	require.ErrorIs(t, err, boom)
}
