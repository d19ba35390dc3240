// Where: internal/usecase/admin/auth.go
// What: Login and group id resolution.
// Why: Every later call needs the token and most need the group id.
package admin

import (
	"context"
	"fmt"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
)

// Authenticate reads operator credentials from the environment and
// exchanges them for a session token.
func (w Workflow) Authenticate(ctx context.Context) (Session, error) {
	creds, err := envutil.ResolveCredentials(w.Getenv)
	if err != nil {
		return Session{}, err
	}

	resp, err := w.API.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}
	if !resp.OK() {
		return Session{}, registry.NewError(registry.KindAuth, "login",
			fmt.Sprintf("Non-200 response (%d) received from DockerHub. Verify your credentials and try again", resp.StatusCode), nil)
	}
	token, err := hubapi.ParseToken(resp.Body)
	if err != nil {
		return Session{}, registry.NewError(registry.KindAuth, "login",
			"Login response from DockerHub did not contain a token", err)
	}
	return Session{Token: token, Operator: creds.Username}, nil
}

// ResolveGroupID looks up the service-assigned id of group.
func (w Workflow) ResolveGroupID(ctx context.Context, session Session, group string) (registry.GroupID, error) {
	resp, err := w.API.Group(ctx, session.Token, group)
	if err != nil {
		return registry.GroupID{}, err
	}
	if !resp.OK() {
		return registry.GroupID{}, registry.NewError(registry.KindLookup, "get group",
			fmt.Sprintf("Non-200 response (%d) from DockerHub. Verify the group %s exists and try again", resp.StatusCode, group), nil)
	}
	id, err := hubapi.ParseGroupID(resp.Body)
	if err != nil {
		return registry.GroupID{}, registry.NewError(registry.KindLookup, "get group",
			fmt.Sprintf("Unexpected response from DockerHub for group %s", group), err)
	}
	return id, nil
}
