// Where: internal/usecase/admin/admin.go
// What: Registry administration workflow and dispatcher.
// Why: Keep the authenticate-then-dispatch flow free of CLI concerns.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
	"github.com/sciurus/dockhub/internal/infra/ui"
)

var (
	errAPINotConfigured      = errors.New("registry api is not configured")
	errRendererNotConfigured = errors.New("document renderer is not configured")
)

// API is the management API surface the workflow drives. Implementations
// return transport failures as errors and every HTTP status as a Response.
type API interface {
	Login(ctx context.Context, creds registry.Credentials) (hubapi.Response, error)
	Group(ctx context.Context, token registry.Token, group string) (hubapi.Response, error)
	GroupMembers(ctx context.Context, token registry.Token, group string) (hubapi.Response, error)
	AddMember(ctx context.Context, token registry.Token, group, user string) (hubapi.Response, error)
	RemoveMember(ctx context.Context, token registry.Token, group, user string) (hubapi.Response, error)
	GrantRepoGroup(ctx context.Context, token registry.Token, repo string, grant registry.RepoGroupGrant) (hubapi.Response, error)
	Repository(ctx context.Context, token registry.Token, repo string) (hubapi.Response, error)
	RepositoryGroups(ctx context.Context, token registry.Token, repo string) (hubapi.Response, error)
	User(ctx context.Context, token registry.Token, user string) (hubapi.Response, error)
}

// DocumentRenderer prints one API document.
type DocumentRenderer interface {
	Render(w io.Writer, doc any) error
	Templated() bool
}

// Session is the authenticated state shared by every call after login.
type Session struct {
	Token    registry.Token
	Operator string
}

// Workflow executes one operation request per Run.
type Workflow struct {
	API           API
	Org           string
	UserInterface ui.UserInterface
	Diagnostics   ui.UserInterface
	Out           io.Writer
	Renderer      DocumentRenderer
	Recorder      audit.Recorder
	Confirm       func(title string) (bool, error)
	Getenv        envutil.Getenv
	Now           func() time.Time
}

// Run authenticates, validates the request, and dispatches its action.
// Authentication failure stops everything; list dumps are fail-fast in
// group, user, repo order.
func (w Workflow) Run(ctx context.Context, req registry.OperationRequest) error {
	if w.API == nil {
		return errAPINotConfigured
	}
	session, err := w.Authenticate(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	switch req.Action {
	case registry.ActionList, "":
		return w.list(ctx, session, req)
	case registry.ActionAdd:
		return w.add(ctx, session, req)
	case registry.ActionRemove:
		return w.remove(ctx, session, req)
	default:
		return registry.NewError(registry.KindUsage, "dispatch", fmt.Sprintf("unknown action %q", req.Action), nil)
	}
}

func (w Workflow) list(ctx context.Context, session Session, req registry.OperationRequest) error {
	if req.Group == "" && req.User == "" && req.Repo == "" {
		return nil
	}
	if w.Renderer == nil {
		return errRendererNotConfigured
	}
	if req.Group != "" {
		if err := w.DumpGroupInfo(ctx, session, req.Group); err != nil {
			return err
		}
	}
	if req.User != "" {
		if err := w.DumpUserInfo(ctx, session, req.User); err != nil {
			return err
		}
	}
	if req.Repo != "" {
		if err := w.DumpRepoInfo(ctx, session, req.Repo); err != nil {
			return err
		}
	}
	return nil
}

func (w Workflow) add(ctx context.Context, session Session, req registry.OperationRequest) error {
	groupID, err := w.ResolveGroupID(ctx, session, req.Group)
	if err != nil {
		return err
	}
	if err := w.AddUserToGroup(ctx, session, req.User, req.Group); err != nil {
		return err
	}
	if req.Repo == "" {
		return nil
	}
	return w.GrantGroupAccess(ctx, session, req.Group, groupID, req.Repo)
}

// remove resolves the group id before any mutation so an unknown group
// fails without side effects, even though removal addresses the group by name.
func (w Workflow) remove(ctx context.Context, session Session, req registry.OperationRequest) error {
	if _, err := w.ResolveGroupID(ctx, session, req.Group); err != nil {
		return err
	}
	if req.DetachesGroupFromRepo() {
		return w.RevokeGroupAccess(ctx, session, req.Group, req.Repo)
	}
	return w.RemoveUserFromGroup(ctx, session, req.User, req.Group)
}

func (w Workflow) success(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Success(msg)
	}
}

func (w Workflow) info(msg string) {
	if w.UserInterface != nil {
		w.UserInterface.Info(msg)
	}
}

func (w Workflow) warn(msg string) {
	if w.Diagnostics != nil {
		w.Diagnostics.Warn(msg)
	}
}

func (w Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
