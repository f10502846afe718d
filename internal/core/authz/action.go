package authz

import "net/http"

// Action is an operation a principal attempts on a resource.
type Action string

const (
	ActionList          Action = "list"
	ActionRead          Action = "read"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDelete        Action = "delete"
)

// Safe reports whether the action never mutates state.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRead
}

// ActionFor classifies an HTTP method. detail distinguishes item routes
// (GET /jobs/:id) from collection routes (GET /jobs).
func ActionFor(method string, detail bool) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		if detail {
			return ActionRead
		}
		return ActionList
	case http.MethodPost:
		return ActionCreate
	case http.MethodPut:
		return ActionUpdate
	case http.MethodPatch:
		return ActionPartialUpdate
	case http.MethodDelete:
		return ActionDelete
	}
	return ""
}
