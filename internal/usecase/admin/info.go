// Where: internal/usecase/admin/info.go
// What: Read-only dumps of groups, users, and repositories.
package admin

import (
	"context"
	"fmt"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
	"github.com/sciurus/dockhub/internal/infra/render"
)

type lookup func(ctx context.Context, token registry.Token, name string) (hubapi.Response, error)

// DumpGroupInfo prints the group document followed by its member list.
func (w Workflow) DumpGroupInfo(ctx context.Context, session Session, group string) error {
	doc, err := w.fetchObject(ctx, session, w.API.Group, "group", group)
	if err != nil {
		return err
	}
	if err := w.emit(fmt.Sprintf("group information for %s", group), doc); err != nil {
		return err
	}

	resp, err := w.API.GroupMembers(ctx, session.Token, group)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return lookupStatus("group members", group, resp.StatusCode)
	}
	members, err := hubapi.ParseDocument(resp.Body)
	if err != nil {
		return lookupPayload("group members", group, err)
	}
	return w.emit(fmt.Sprintf("Membership information for %s", group), members)
}

// DumpUserInfo prints the public user document.
func (w Workflow) DumpUserInfo(ctx context.Context, session Session, user string) error {
	doc, err := w.fetchObject(ctx, session, w.API.User, "user", user)
	if err != nil {
		return err
	}
	return w.emit(fmt.Sprintf("User information for %s", user), doc)
}

// DumpRepoInfo prints repository metadata merged with its group
// permissions. Permission keys replace metadata keys of the same name.
func (w Workflow) DumpRepoInfo(ctx context.Context, session Session, repo string) error {
	metadata, err := w.fetchObject(ctx, session, w.API.Repository, "repository", repo)
	if err != nil {
		return err
	}
	permissions, err := w.fetchObject(ctx, session, w.API.RepositoryGroups, "repository groups", repo)
	if err != nil {
		return err
	}
	return w.emit(fmt.Sprintf("Repo information for %s", repo), render.Merge(metadata, permissions))
}

func (w Workflow) fetchObject(ctx context.Context, session Session, get lookup, what, name string) (map[string]any, error) {
	resp, err := get(ctx, session.Token, name)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, lookupStatus(what, name, resp.StatusCode)
	}
	doc, err := hubapi.ParseObject(resp.Body)
	if err != nil {
		return nil, lookupPayload(what, name, err)
	}
	return doc, nil
}

// emit prints the header line, unless a user template owns the output,
// and then the document.
func (w Workflow) emit(header string, doc any) error {
	if !w.Renderer.Templated() {
		w.info(header)
	}
	if err := w.Renderer.Render(w.Out, doc); err != nil {
		return fmt.Errorf("render %s: %w", header, err)
	}
	return nil
}

func lookupStatus(what, name string, status int) error {
	return registry.NewError(registry.KindLookup, "get "+what,
		fmt.Sprintf("Non-200 response (%d) from DockerHub looking up %s %s", status, what, name), nil)
}

func lookupPayload(what, name string, err error) error {
	return registry.NewError(registry.KindLookup, "get "+what,
		fmt.Sprintf("Unexpected response from DockerHub for %s %s", what, name), err)
}
