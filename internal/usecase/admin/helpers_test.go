package admin

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
	"github.com/sciurus/dockhub/internal/infra/render"
	"github.com/sciurus/dockhub/internal/infra/ui"
)

// fakeAPI answers each operation with queued responses; the last queued
// response repeats. An operation with nothing queued answers 500.
type fakeAPI struct {
	responses map[string][]hubapi.Response
	errs      map[string]error
	calls     []string
	grants    []registry.RepoGroupGrant
	creds     []registry.Credentials
	tokens    []registry.Token
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: map[string][]hubapi.Response{},
		errs:      map[string]error{},
	}
}

func (f *fakeAPI) on(op string, status int, body string) *fakeAPI {
	f.responses[op] = append(f.responses[op], hubapi.Response{StatusCode: status, Body: []byte(body)})
	return f
}

func (f *fakeAPI) count(op string) int {
	n := 0
	for _, call := range f.calls {
		if call == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) answer(op string, token registry.Token) (hubapi.Response, error) {
	f.calls = append(f.calls, op)
	if token != "" {
		f.tokens = append(f.tokens, token)
	}
	if err := f.errs[op]; err != nil {
		return hubapi.Response{}, err
	}
	queued := f.responses[op]
	switch len(queued) {
	case 0:
		return hubapi.Response{StatusCode: 500, Body: []byte(`{}`)}, nil
	case 1:
		return queued[0], nil
	default:
		f.responses[op] = queued[1:]
		return queued[0], nil
	}
}

func (f *fakeAPI) Login(_ context.Context, creds registry.Credentials) (hubapi.Response, error) {
	f.creds = append(f.creds, creds)
	return f.answer("login", "")
}

func (f *fakeAPI) Group(_ context.Context, token registry.Token, _ string) (hubapi.Response, error) {
	return f.answer("group", token)
}

func (f *fakeAPI) GroupMembers(_ context.Context, token registry.Token, _ string) (hubapi.Response, error) {
	return f.answer("members", token)
}

func (f *fakeAPI) AddMember(_ context.Context, token registry.Token, _, _ string) (hubapi.Response, error) {
	return f.answer("add", token)
}

func (f *fakeAPI) RemoveMember(_ context.Context, token registry.Token, _, _ string) (hubapi.Response, error) {
	return f.answer("remove", token)
}

func (f *fakeAPI) GrantRepoGroup(_ context.Context, token registry.Token, _ string, grant registry.RepoGroupGrant) (hubapi.Response, error) {
	f.grants = append(f.grants, grant)
	return f.answer("grant", token)
}

func (f *fakeAPI) Repository(_ context.Context, token registry.Token, _ string) (hubapi.Response, error) {
	return f.answer("repo", token)
}

func (f *fakeAPI) RepositoryGroups(_ context.Context, token registry.Token, _ string) (hubapi.Response, error) {
	return f.answer("repo groups", token)
}

func (f *fakeAPI) User(_ context.Context, token registry.Token, _ string) (hubapi.Response, error) {
	return f.answer("user", token)
}

type testUI struct {
	success []string
	info    []string
	warn    []string
}

func (u *testUI) Success(msg string) {
	u.success = append(u.success, msg)
}

func (u *testUI) Info(msg string) {
	u.info = append(u.info, msg)
}

func (u *testUI) Warn(msg string) {
	u.warn = append(u.warn, msg)
}

func (u *testUI) Block(_, _ string, _ []ui.KeyValue) {}

type recordingRecorder struct {
	events []audit.Event
	err    error
}

func (r *recordingRecorder) Record(_ context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return r.err
}

var errRecorderDown = errors.New("recorder down")

type workflowFixture struct {
	api      *fakeAPI
	ui       *testUI
	diag     *testUI
	out      *bytes.Buffer
	recorder *recordingRecorder
	workflow Workflow
}

func testEnv(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func newFixture() *workflowFixture {
	renderer, err := render.New(render.FormatJSON, "")
	if err != nil {
		panic(err)
	}
	f := &workflowFixture{
		api:      newFakeAPI(),
		ui:       &testUI{},
		diag:     &testUI{},
		out:      &bytes.Buffer{},
		recorder: &recordingRecorder{},
	}
	f.workflow = Workflow{
		API:           f.api,
		Org:           "mozilla",
		UserInterface: f.ui,
		Diagnostics:   f.diag,
		Out:           f.out,
		Renderer:      renderer,
		Recorder:      f.recorder,
		Getenv:        testEnv(map[string]string{"DH_USERNAME": "operator", "DH_PASSWORD": "pw"}),
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return f
}

// loggedIn queues a successful login returning token "t".
func (f *workflowFixture) loggedIn() *workflowFixture {
	f.api.on("login", 200, `{"token":"t"}`)
	return f
}

var testSession = Session{Token: "t", Operator: "operator"}
