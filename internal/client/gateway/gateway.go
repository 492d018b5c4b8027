// Package gateway wraps every call to the records API with the session's
// credential and applies one response-classification policy for all higher
// components: 401 tears the session down globally, 403 is a local denial,
// 409 is a distinct conflict outcome, anything else non-2xx is a server
// error, and a missing response entirely is a connectivity error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/linkledger/lenderctl/internal/common"
	"github.com/linkledger/lenderctl/internal/logging"
)

// TokenSource reports the stored session credential, if any. The session
// manager satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

type Gateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	// onUnauthorized runs once per 401 classification, before the error is
	// returned. The app wires it to session teardown plus an operator notice.
	onUnauthorized func(ctx context.Context)
}

func New(baseURL string, tokens TokenSource, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// BaseURL returns the configured API origin. The document fetcher uses it to
// absolutize legacy-relative file locations.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// SetUnauthorizedHook registers the global 401 handler.
func (g *Gateway) SetUnauthorizedHook(fn func(ctx context.Context)) {
	g.onUnauthorized = fn
}

// envelope is the error/message shape the API uses for non-2xx bodies.
// Some endpoints say "message", older ones say "error".
type envelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// decodeBody always attempts to parse a JSON body; a missing or non-JSON
// body is treated as an empty object rather than failing the call.
func decodeBody(data []byte, out any) envelope {
	var env envelope
	if len(bytes.TrimSpace(data)) == 0 {
		return env
	}
	_ = json.Unmarshal(data, &env)
	if out != nil {
		_ = json.Unmarshal(data, out)
	}
	return env
}

// Do issues one protected request. The raw stored token goes in the
// Authorization header with no scheme prefix whenever a session is active.
// On 2xx the response body (if any) is decoded into out and nil is returned;
// otherwise the classified error is returned and out is left alone.
//
// A 401 is already handled when Do returns common.ErrSessionExpired: the
// unauthorized hook has run and the caller must not report it again.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	resp, data, err := g.roundTrip(ctx, method, path, body, true)
	if err != nil {
		return err
	}

	env := decodeBody(data, nil)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		decodeBody(data, out)
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		g.log.Warn(ctx, "credential rejected, tearing down session", "path", path)
		if g.onUnauthorized != nil {
			g.onUnauthorized(ctx)
		}
		return common.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return &ForbiddenError{Message: env.text()}
	case resp.StatusCode == http.StatusConflict:
		return &ConflictError{Message: env.text()}
	default:
		return &ServerError{Status: resp.StatusCode, Message: env.text()}
	}
}

// Exchange issues an unauthenticated JSON exchange (login, registration,
// signup intake). Unlike Do it never attaches the credential and never runs
// the 401 teardown: those endpoints own their error surface. It returns the
// status code and the server's message so the caller can classify.
func (g *Gateway) Exchange(ctx context.Context, method, path string, body, out any) (int, string, error) {
	resp, data, err := g.roundTrip(ctx, method, path, body, false)
	if err != nil {
		return 0, "", err
	}

	env := decodeBody(data, nil)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		decodeBody(data, out)
	}
	return resp.StatusCode, env.text(), nil
}

// FetchBinary retrieves a protected binary document. On success it returns
// the raw payload and its declared content type. On non-2xx it extracts an
// error message only if the response declares a JSON content type.
func (g *Gateway) FetchBinary(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	g.attachToken(req)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, "", &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &ConnectivityError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.log.Warn(ctx, "credential rejected on document fetch, tearing down session", "url", url)
		if g.onUnauthorized != nil {
			g.onUnauthorized(ctx)
		}
		return nil, "", common.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if strings.Contains(resp.Header.Get("Content-Type"), "json") {
			msg = decodeBody(data, nil).text()
		}
		return nil, "", &ServerError{Status: resp.StatusCode, Message: msg}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (g *Gateway) roundTrip(ctx context.Context, method, path string, body any, protected bool) (*http.Response, []byte, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, payload)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		g.attachToken(req)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &ConnectivityError{Err: err}
	}
	return resp, data, nil
}

func (g *Gateway) attachToken(req *http.Request) {
	if token, ok := g.tokens.Token(); ok {
		// Raw token value, no scheme prefix. The API predates Bearer auth.
		req.Header.Set("Authorization", token)
	}
}
