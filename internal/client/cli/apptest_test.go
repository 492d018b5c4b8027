package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/linkledger/lenderctl/internal/client/consent"
	"github.com/linkledger/lenderctl/internal/client/session"
)

// fakeExchanger answers the login exchange with canned values. The response
// travels through a JSON round-trip so it lands in whatever DTO the session
// manager decodes into.
type fakeExchanger struct {
	status int
	msg    string
	token  string
	email  string
	role   string
}

func (f *fakeExchanger) Exchange(_ context.Context, _, _ string, _, out any) (int, string, error) {
	if out != nil && f.status == 200 {
		b, _ := json.Marshal(map[string]string{"token": f.token, "email": f.email, "role": f.role})
		_ = json.Unmarshal(b, out)
	}
	return f.status, f.msg, nil
}

// fakeDoAPI routes protected calls to a test closure.
type fakeDoAPI struct {
	onDo func(method, path string, body, out any) error
}

func (f *fakeDoAPI) Do(_ context.Context, method, path string, body, out any) error {
	return f.onDo(method, path, body, out)
}

var testDBSeq int

func newSessionManager(t *testing.T, api session.Exchanger) *session.Manager {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:clitest%d?mode=memory&cache=shared", testDBSeq)
	db, err := session.OpenDB(context.Background(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewManager(db, api)
}

// newLoggedInApp builds an App with an established session of the given role
// and no wired services; tests attach the services they exercise.
func newLoggedInApp(t *testing.T, role string) *App {
	t.Helper()
	mgr := newSessionManager(t, &fakeExchanger{status: 200, token: "tk", email: "op@x.bw", role: role})
	_, err := mgr.Establish(context.Background(), "op@x.bw", []byte("pw"))
	require.NoError(t, err)

	return &App{
		sessions:      mgr,
		reader:        bufio.NewReader(strings.NewReader("")),
		consentStatus: consent.StatusPending,
	}
}

// stubInputs queues canned answers for both text input seams, in prompt
// order. Running out of answers fails the test.
func stubInputs(t *testing.T, answers ...string) {
	t.Helper()
	origText, origOpt := getSimpleText, getOptionalText
	i := 0
	next := func() (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected extra prompt (already consumed %d answers)", len(answers))
		}
		a := answers[i]
		i++
		return a, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getOptionalText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	t.Cleanup(func() {
		getSimpleText = origText
		getOptionalText = origOpt
	})
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return append([]byte(nil), pw...), nil }
	t.Cleanup(func() { getPassword = orig })
}
