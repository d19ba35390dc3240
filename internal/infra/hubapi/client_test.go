package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sirupsen/logrus"
)

type recordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	RawPath string
}

func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			RawPath: r.URL.EscapedPath(),
			Header:  r.Header.Clone(),
			Body:    payload,
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Options{BaseURL: baseURL + "/v2/", Org: "mozilla"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRequiresBaseURLAndOrg(t *testing.T) {
	if _, err := New(Options{Org: "mozilla"}); !errors.Is(err, errBaseURLRequired) {
		t.Fatalf("expected base url error, got %v", err)
	}
	if _, err := New(Options{BaseURL: "https://hub.docker.com/v2"}); !errors.Is(err, errOrgRequired) {
		t.Fatalf("expected org error, got %v", err)
	}
}

func TestLoginSendsCredentialsWithoutAuthorization(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{"token":"t"}`)
	client := newTestClient(t, server.URL)

	resp, err := client.Login(context.Background(), registry.Credentials{Username: "op", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	got := (*requests)[0]
	if got.Method != http.MethodPost || got.Path != "/v2/users/login/" {
		t.Fatalf("unexpected request %s %s", got.Method, got.Path)
	}
	if got.Header.Get("Authorization") != "" {
		t.Fatalf("login must not carry an Authorization header")
	}
	if got.Header.Get("Content-Type") != "application/json" || got.Header.Get("charset") != "utf-8" {
		t.Fatalf("unexpected content headers: %v", got.Header)
	}
	var body map[string]string
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["username"] != "op" || body["password"] != "pw" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEndpointsUseDocumentedPaths(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)
	ctx := context.Background()
	token := registry.Token("abc")

	calls := []struct {
		name   string
		call   func() (Response, error)
		method string
		path   string
		body   string
	}{
		{"group", func() (Response, error) { return client.Group(ctx, token, "devs") }, http.MethodGet, "/v2/orgs/mozilla/groups/devs", ""},
		{"members", func() (Response, error) { return client.GroupMembers(ctx, token, "devs") }, http.MethodGet, "/v2/orgs/mozilla/groups/devs/members", ""},
		{"add", func() (Response, error) { return client.AddMember(ctx, token, "devs", "alice") }, http.MethodPost, "/v2/orgs/mozilla/groups/devs/members/", `{"member":"alice"}`},
		{"remove", func() (Response, error) { return client.RemoveMember(ctx, token, "devs", "alice") }, http.MethodDelete, "/v2/orgs/mozilla/groups/devs/members/alice", ""},
		{"grant", func() (Response, error) {
			return client.GrantRepoGroup(ctx, token, "app", registry.RepoGroupGrant{GroupID: registry.NumericGroupID(42), Permission: registry.PermissionWrite})
		}, http.MethodPost, "/v2/repositories/mozilla/app/groups/", `{"group_id":42,"permission":"write"}`},
		{"repo", func() (Response, error) { return client.Repository(ctx, token, "app") }, http.MethodGet, "/v2/repositories/mozilla/app", ""},
		{"repo groups", func() (Response, error) { return client.RepositoryGroups(ctx, token, "app") }, http.MethodGet, "/v2/repositories/mozilla/app/groups/", ""},
		{"user", func() (Response, error) { return client.User(ctx, token, "alice") }, http.MethodGet, "/v2/users/alice", ""},
	}

	for i, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(); err != nil {
				t.Fatalf("call: %v", err)
			}
			got := (*requests)[i]
			if got.Method != tt.method || got.Path != tt.path {
				t.Fatalf("request = %s %s, want %s %s", got.Method, got.Path, tt.method, tt.path)
			}
			if got.Header.Get("Authorization") != "JWT abc" {
				t.Fatalf("Authorization = %q", got.Header.Get("Authorization"))
			}
			if strings.TrimSpace(string(got.Body)) != tt.body {
				t.Fatalf("body = %q, want %q", got.Body, tt.body)
			}
			if tt.body != "" && got.Header.Get("Content-Type") != "application/json" {
				t.Fatalf("mutating call without JSON content type")
			}
		})
	}
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)

	if _, err := client.Group(context.Background(), "t", "../admins"); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got := (*requests)[0].RawPath; got != "/v2/orgs/mozilla/groups/..%2Fadmins" {
		t.Fatalf("escaped path = %q", got)
	}
}

func TestNonSuccessStatusIsNotAnError(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `{"detail":"Not found"}`)
	client := newTestClient(t, server.URL)

	resp, err := client.User(context.Background(), "t", "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK() || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := newTestClient(t, url)
	_, err := client.Login(context.Background(), registry.Credentials{Username: "u", Password: "p"})
	if !errors.Is(err, registry.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unable to connect to dockerhub") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRedirectLoopIsTransportError(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path, http.StatusFound)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)
	_, err := client.User(context.Background(), "t", "loop")
	if !errors.Is(err, registry.ErrTransport) || !errors.Is(err, errTooManyRedirects) {
		t.Fatalf("expected redirect transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Too many redirects encountered") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := New(Options{BaseURL: server.URL, Org: "mozilla", Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.User(context.Background(), "t", "slow")
	if !errors.Is(err, registry.ErrTransport) || !strings.Contains(err.Error(), "Timeout") {
		t.Fatalf("expected timeout transport error, got %v", err)
	}
}

func TestVerboseLoggingOmitsSecrets(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK, `{"token":"secret-token"}`)
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetLevel(logrus.DebugLevel)

	client, err := New(Options{BaseURL: server.URL, Org: "mozilla", Logger: logger})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Login(context.Background(), registry.Credentials{Username: "op", Password: "hunter2"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	out := logs.String()
	if !strings.Contains(out, "status=200") || !strings.Contains(out, "/users/login/") {
		t.Fatalf("expected request trace, got %q", out)
	}
	if strings.Contains(out, "hunter2") || strings.Contains(out, "secret-token") {
		t.Fatalf("secrets leaked into logs: %q", out)
	}
}
