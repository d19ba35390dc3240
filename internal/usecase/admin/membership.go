// Where: internal/usecase/admin/membership.go
// What: Group membership mutations with read-back verification.
// Why: The API acknowledges writes that do not always take effect, so
// every mutation is confirmed against a fresh member list.
package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
)

const (
	auditAddMember    = "add-member"
	auditRemoveMember = "remove-member"
)

// AddUserToGroup adds user to group and confirms the user is listed as a
// member afterwards.
func (w Workflow) AddUserToGroup(ctx context.Context, session Session, user, group string) error {
	resp, err := w.API.AddMember(ctx, session.Token, group, user)
	if err == nil {
		err = w.checkAdded(ctx, session, resp, user, group)
	}
	w.record(ctx, session, audit.Event{Action: auditAddMember, Group: group, User: user}, err)
	if err != nil {
		return err
	}
	w.success(fmt.Sprintf("Added %s to %s", user, group))
	return nil
}

func (w Workflow) checkAdded(ctx context.Context, session Session, resp hubapi.Response, user, group string) error {
	if !resp.OK() {
		return registry.NewError(registry.KindAPI, "add member",
			fmt.Sprintf("Non-200 response (%d) from DockerHub adding %s to %s", resp.StatusCode, user, group), nil)
	}
	present, err := w.isMember(ctx, session, user, group, "added to")
	if err != nil {
		return err
	}
	if !present {
		return registry.NewError(registry.KindVerification, "add member",
			fmt.Sprintf("Unknown error adding %s to %s: %s is not a member after the add", user, group, user), nil)
	}
	return nil
}

// RemoveUserFromGroup asks for confirmation when a prompt is configured,
// removes user from group, and confirms the user is gone.
func (w Workflow) RemoveUserFromGroup(ctx context.Context, session Session, user, group string) error {
	if w.Confirm != nil {
		ok, err := w.Confirm(fmt.Sprintf("Remove %s from %s?", user, group))
		if err != nil {
			return registry.NewError(registry.KindAborted, "remove member", "Confirmation prompt failed", err)
		}
		if !ok {
			return registry.NewError(registry.KindAborted, "remove member",
				fmt.Sprintf("Aborted; %s was not removed from %s", user, group), nil)
		}
	}

	resp, err := w.API.RemoveMember(ctx, session.Token, group, user)
	if err == nil {
		err = w.checkRemoved(ctx, session, resp, user, group)
	}
	w.record(ctx, session, audit.Event{Action: auditRemoveMember, Group: group, User: user}, err)
	if err != nil {
		return err
	}
	w.success(fmt.Sprintf("Removed %s from %s", user, group))
	return nil
}

func (w Workflow) checkRemoved(ctx context.Context, session Session, resp hubapi.Response, user, group string) error {
	if resp.StatusCode != http.StatusNoContent {
		return registry.NewError(registry.KindAPI, "remove member",
			fmt.Sprintf("Non-204 response (%d) from DockerHub removing %s from %s", resp.StatusCode, user, group), nil)
	}
	present, err := w.isMember(ctx, session, user, group, "removed from")
	if err != nil {
		return err
	}
	if present {
		return registry.NewError(registry.KindVerification, "remove member",
			fmt.Sprintf("Unknown error removing %s from %s: %s is still a member after the removal", user, group, user), nil)
	}
	return nil
}

// isMember re-reads the member list. A failed or unreadable read-back
// cannot say anything about the mutation that already happened, so it is
// reported as uncertain.
func (w Workflow) isMember(ctx context.Context, session Session, user, group, verb string) (bool, error) {
	uncertain := func(cause error) error {
		return registry.NewError(registry.KindVerificationUncertain, "verify membership",
			fmt.Sprintf("Could not verify %s has been %s %s. Caveat emptor!", user, verb, group), cause)
	}

	resp, err := w.API.GroupMembers(ctx, session.Token, group)
	if err != nil {
		return false, uncertain(err)
	}
	if !resp.OK() {
		return false, uncertain(fmt.Errorf("members lookup returned status %d", resp.StatusCode))
	}
	members, err := hubapi.ParseMembers(resp.Body)
	if err != nil {
		return false, uncertain(err)
	}
	for _, member := range members {
		if member.Username == user {
			return true, nil
		}
	}
	return false, nil
}
