// Where: internal/infra/hubapi/endpoints.go
// What: One method per management API operation.
// Why: Keep paths, verbs, and bodies next to each other; status handling
// belongs to the caller.
package hubapi

import (
	"context"
	"net/http"

	"github.com/sciurus/dockhub/internal/domain/registry"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addMemberRequest struct {
	Member string `json:"member"`
}

// Login posts credentials to /users/login/.
func (c *Client) Login(ctx context.Context, creds registry.Credentials) (Response, error) {
	body := loginRequest{Username: creds.Username, Password: creds.Password}
	return c.do(ctx, "login", http.MethodPost, "/users/login/", "", body)
}

// Group fetches /orgs/<org>/groups/<group>.
func (c *Client) Group(ctx context.Context, token registry.Token, group string) (Response, error) {
	return c.do(ctx, "get group", http.MethodGet, c.groupPath(group), token, nil)
}

// GroupMembers fetches /orgs/<org>/groups/<group>/members.
func (c *Client) GroupMembers(ctx context.Context, token registry.Token, group string) (Response, error) {
	return c.do(ctx, "list group members", http.MethodGet, c.groupPath(group)+"/members", token, nil)
}

// AddMember posts {member} to /orgs/<org>/groups/<group>/members/.
func (c *Client) AddMember(ctx context.Context, token registry.Token, group, user string) (Response, error) {
	return c.do(ctx, "add member", http.MethodPost, c.groupPath(group)+"/members/", token, addMemberRequest{Member: user})
}

// RemoveMember deletes /orgs/<org>/groups/<group>/members/<user>.
func (c *Client) RemoveMember(ctx context.Context, token registry.Token, group, user string) (Response, error) {
	return c.do(ctx, "remove member", http.MethodDelete, c.groupPath(group)+"/members/"+segment(user), token, nil)
}

// GrantRepoGroup posts a group grant to /repositories/<org>/<repo>/groups/.
func (c *Client) GrantRepoGroup(ctx context.Context, token registry.Token, repo string, grant registry.RepoGroupGrant) (Response, error) {
	return c.do(ctx, "grant repository access", http.MethodPost, c.repoPath(repo)+"/groups/", token, grant)
}

// Repository fetches /repositories/<org>/<repo>.
func (c *Client) Repository(ctx context.Context, token registry.Token, repo string) (Response, error) {
	return c.do(ctx, "get repository", http.MethodGet, c.repoPath(repo), token, nil)
}

// RepositoryGroups fetches /repositories/<org>/<repo>/groups/.
func (c *Client) RepositoryGroups(ctx context.Context, token registry.Token, repo string) (Response, error) {
	return c.do(ctx, "list repository groups", http.MethodGet, c.repoPath(repo)+"/groups/", token, nil)
}

// User fetches /users/<user>.
func (c *Client) User(ctx context.Context, token registry.Token, user string) (Response, error) {
	return c.do(ctx, "get user", http.MethodGet, "/users/"+segment(user), token, nil)
}

func (c *Client) groupPath(group string) string {
	return "/orgs/" + segment(c.org) + "/groups/" + segment(group)
}

func (c *Client) repoPath(repo string) string {
	return "/repositories/" + segment(c.org) + "/" + segment(repo)
}
