package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkledger/lenderctl/internal/common"
	"github.com/linkledger/lenderctl/internal/logging"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func TestDo_AttachesRawTokenWithoutScheme(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "raw-token-value", ok: true}, testLogger())
	require.NoError(t, g.Do(context.Background(), http.MethodGet, "/api/clients/mine", nil, nil))
	require.Equal(t, "raw-token-value", gotAuth)
}

func TestDo_NoTokenWhenNoSession(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{}, testLogger())
	require.NoError(t, g.Do(context.Background(), http.MethodGet, "/x", nil, nil))
	require.False(t, sawAuth)
}

func TestDo_DecodesResponseInto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fullName":"Thabo M","status":"owing"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	var out struct {
		FullName string `json:"fullName"`
		Status   string `json:"status"`
	}
	require.NoError(t, g.Do(context.Background(), http.MethodGet, "/x", nil, &out))
	require.Equal(t, "Thabo M", out.FullName)
	require.Equal(t, "owing", out.Status)
}

func TestDo_NonJSONBodyIsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	var out struct {
		FullName string `json:"fullName"`
	}
	require.NoError(t, g.Do(context.Background(), http.MethodGet, "/x", nil, &out))
	require.Empty(t, out.FullName)
}

func TestDo_401RunsHookOnceAndReturnsHandledError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())
	hookCalls := 0
	g.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	err := g.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.ErrorIs(t, err, common.ErrSessionExpired)
	require.Equal(t, 1, hookCalls)
}

func TestDo_403LeavesSessionAloneAndCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"admins only"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())
	hookCalls := 0
	g.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	err := g.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	require.Equal(t, "admins only", forbidden.Message)
	require.Zero(t, hookCalls)
}

func TestDo_409IsDistinctConflictOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"borrower already registered"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	err := g.Do(context.Background(), http.MethodPost, "/api/clients", map[string]string{"fullName": "T"}, nil)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "borrower already registered", conflict.Message)
}

func TestDo_OtherNon2xxIsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	err := g.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, http.StatusBadGateway, serverErr.Status)
}

func TestDo_TransportFailureIsConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	err := g.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	var connectivity *ConnectivityError
	require.ErrorAs(t, err, &connectivity)
}

func TestExchange_NeverAttachesTokenOrTearsDown(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())
	hookCalls := 0
	g.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	status, msg, err := g.Exchange(context.Background(), http.MethodPost, "/api/auth/login", map[string]string{}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid credentials", msg)
	require.False(t, sawAuth)
	require.Zero(t, hookCalls)
}

func TestFetchBinary_ReturnsPayloadAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tk", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	data, contentType, err := g.FetchBinary(context.Background(), srv.URL+"/uploads/consent.pdf")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", contentType)
	require.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestFetchBinary_JSONErrorBodyExtracted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"document purged"}`))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	_, _, err := g.FetchBinary(context.Background(), srv.URL+"/uploads/x.pdf")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, "document purged", serverErr.Message)
}

func TestFetchBinary_NonJSONErrorBodyIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())

	_, _, err := g.FetchBinary(context.Background(), srv.URL+"/uploads/x.pdf")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Empty(t, serverErr.Message)
	require.Equal(t, http.StatusInternalServerError, serverErr.Status)
}

func TestFetchBinary_401TearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := New(srv.URL, staticTokens{token: "tk", ok: true}, testLogger())
	hookCalls := 0
	g.SetUnauthorizedHook(func(ctx context.Context) { hookCalls++ })

	_, _, err := g.FetchBinary(context.Background(), srv.URL+"/uploads/x.pdf")
	require.ErrorIs(t, err, common.ErrSessionExpired)
	require.Equal(t, 1, hookCalls)
}
