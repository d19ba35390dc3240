// Where: internal/usecase/admin/access.go
// What: Repository access grants for groups.
// Why: Teams get repository write access through their group only.
package admin

import (
	"context"
	"fmt"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
)

const auditGrantAccess = "grant-repo-access"

// GrantGroupAccess gives group write access to repo and checks that the
// returned grant list leads with the same group id.
func (w Workflow) GrantGroupAccess(ctx context.Context, session Session, group string, groupID registry.GroupID, repo string) error {
	grant := registry.RepoGroupGrant{GroupID: groupID, Permission: registry.PermissionWrite}
	resp, err := w.API.GrantRepoGroup(ctx, session.Token, repo, grant)
	if err == nil {
		err = checkGranted(resp, group, groupID, repo)
	}
	w.record(ctx, session, audit.Event{Action: auditGrantAccess, Group: group, Repo: repo}, err)
	if err != nil {
		return err
	}
	w.success(fmt.Sprintf("Granted %s %s access to %s", group, registry.PermissionWrite, repo))
	return nil
}

func checkGranted(resp hubapi.Response, group string, groupID registry.GroupID, repo string) error {
	if !resp.OK() {
		return registry.NewError(registry.KindAPI, "grant repository access",
			fmt.Sprintf("Non-200 response (%d) from DockerHub granting %s access to %s", resp.StatusCode, group, repo), nil)
	}
	unverified := func(cause error) error {
		return registry.NewError(registry.KindVerification, "grant repository access",
			fmt.Sprintf("Unknown error adding %s to %s", group, repo), cause)
	}
	grants, err := hubapi.ParseGrants(resp.Body)
	if err != nil {
		return unverified(err)
	}
	if len(grants) == 0 {
		return unverified(fmt.Errorf("grant list is empty"))
	}
	if !grants[0].GroupID.Equal(groupID) {
		return unverified(fmt.Errorf("grant list returned group id %s, want %s", grants[0].GroupID, groupID))
	}
	return nil
}

// RevokeGroupAccess would detach group from repo. Access is only ever
// withdrawn by removing users from the group, so this always fails
// without calling the API.
func (w Workflow) RevokeGroupAccess(_ context.Context, _ Session, group, repo string) error {
	return registry.NewError(registry.KindNotImplemented, "revoke repository access",
		fmt.Sprintf("Removing group %s from repo %s is not implemented; remove users from the group instead. No access was changed", group, repo), nil)
}
