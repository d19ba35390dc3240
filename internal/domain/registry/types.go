// Where: internal/domain/registry/types.go
// What: Request-scoped values exchanged with the registry management API.
// Why: Keep credentials, ids, and operation requests free of transport details.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Credentials identify the operator against the login endpoint.
type Credentials struct {
	Username string
	Password string
}

// Token is the bearer credential returned by login.
type Token string

// AuthorizationHeader renders the header value expected by the service.
func (t Token) AuthorizationHeader() string {
	return "JWT " + string(t)
}

// GroupID is the service-assigned group identifier. The service may send
// it as a JSON number or a JSON string; both round-trip unchanged.
type GroupID struct {
	value   string
	numeric bool
}

// NewGroupID builds a string-typed group id.
func NewGroupID(value string) GroupID {
	return GroupID{value: value}
}

// NumericGroupID builds a number-typed group id.
func NumericGroupID(value int64) GroupID {
	return GroupID{value: fmt.Sprintf("%d", value), numeric: true}
}

func (id GroupID) String() string {
	return id.value
}

// IsZero reports whether the id was never resolved.
func (id GroupID) IsZero() bool {
	return id.value == ""
}

// Equal compares ids by their textual form, so 42 and "42" match.
func (id GroupID) Equal(other GroupID) bool {
	return id.value == other.value
}

func (id GroupID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *GroupID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errGroupIDNull
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return fmt.Errorf("decode group id: %w", err)
		}
		*id = GroupID{value: value}
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("decode group id: %w", err)
	}
	*id = GroupID{value: number.String(), numeric: true}
	return nil
}

// Member is one entry of a group membership listing.
type Member struct {
	Username string `json:"username"`
}

// Permission is a repository access level. Group grants are always write.
type Permission string

const PermissionWrite Permission = "write"

// RepoGroupGrant is the body of the grant-repository-access call and the
// shape of each element the service returns for it.
type RepoGroupGrant struct {
	GroupID    GroupID    `json:"group_id"`
	Permission Permission `json:"permission,omitempty"`
}

// Action selects what the dispatcher does after authentication.
type Action string

const (
	ActionList   Action = "list"
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// ParseAction maps a CLI value to an Action. Empty means list.
func ParseAction(value string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(value))) {
	case "", ActionList:
		return ActionList, nil
	case ActionAdd:
		return ActionAdd, nil
	case ActionRemove:
		return ActionRemove, nil
	default:
		return "", NewError(KindUsage, "parse action", fmt.Sprintf("unknown action %q (expected list, add, or remove)", value), nil)
	}
}

// OperationRequest is the parsed operator intent for one invocation.
type OperationRequest struct {
	Repo   string
	Group  string
	User   string
	Action Action
	Force  bool
	Yes    bool
}

// DetachesGroupFromRepo reports whether the request selects the
// group-from-repository removal branch.
func (r OperationRequest) DetachesGroupFromRepo() bool {
	return r.Action == ActionRemove && r.Force && r.User == "" && r.Repo != ""
}

// Validate checks the selectors each action needs.
func (r OperationRequest) Validate() error {
	switch r.Action {
	case ActionList, "":
		return nil
	case ActionAdd:
		if r.Group == "" {
			return NewError(KindUsage, "validate", "add requires --group", nil)
		}
		if r.User == "" {
			return NewError(KindUsage, "validate", "add requires --user", nil)
		}
		return nil
	case ActionRemove:
		if r.Group == "" {
			return NewError(KindUsage, "validate", "remove requires --group", nil)
		}
		if r.User == "" && !r.DetachesGroupFromRepo() {
			return NewError(KindUsage, "validate", "remove requires --user (or --force with --repo to detach the group)", nil)
		}
		return nil
	default:
		return NewError(KindUsage, "validate", fmt.Sprintf("unknown action %q", r.Action), nil)
	}
}
