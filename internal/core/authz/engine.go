// Package authz decides whether a principal may perform an action on a
// resource. Every decision comes from a single policy table keyed by
// (resource type, action); superusers bypass the table entirely.
package authz

import (
	"slices"

	"github.com/easework/jobboard-api/internal/core/domain"
)

type check uint8

const (
	checkNone        check = iota
	checkOwner             // principal must own the instance
	checkParticipant       // owner or any listed participant
)

type rule struct {
	public        bool          // anonymous principals allowed
	roles         []domain.Role // empty means any authenticated role
	check         check
	adminOverride bool // the admin role acts as superuser for this rule
}

type policyKey struct {
	resource domain.ResourceType
	action   Action
}

// Options toggles the policy decisions still awaiting stakeholder sign-off.
type Options struct {
	// EmployerStatusUpdates lets the employer who posted a job change the
	// status of applications to it. When false only admins may.
	EmployerStatusUpdates bool
}

// Engine evaluates the policy table.
type Engine struct {
	rules map[policyKey]rule
}

// NewEngine builds the policy table.
func NewEngine(opts Options) *Engine {
	public := rule{public: true}
	owner := rule{check: checkOwner}
	adminOnly := rule{roles: []domain.Role{domain.RoleAdmin}, adminOverride: true}

	applicationUpdate := adminOnly
	if opts.EmployerStatusUpdates {
		applicationUpdate = rule{check: checkOwner, adminOverride: true}
	}

	rules := map[policyKey]rule{
		{domain.ResourceJob, ActionList}:          public,
		{domain.ResourceJob, ActionRead}:          public,
		{domain.ResourceJob, ActionCreate}:        {roles: []domain.Role{domain.RoleEmployer, domain.RoleAdmin}},
		{domain.ResourceJob, ActionUpdate}:        owner,
		{domain.ResourceJob, ActionPartialUpdate}: owner,
		{domain.ResourceJob, ActionDelete}:        owner,

		{domain.ResourceIndustry, ActionList}:          public,
		{domain.ResourceIndustry, ActionRead}:          public,
		{domain.ResourceIndustry, ActionCreate}:        {roles: []domain.Role{domain.RoleAdmin}},
		{domain.ResourceIndustry, ActionUpdate}:        owner,
		{domain.ResourceIndustry, ActionPartialUpdate}: owner,
		{domain.ResourceIndustry, ActionDelete}:        owner,

		{domain.ResourceJobApplicants, ActionList}: {check: checkOwner, adminOverride: true},

		{domain.ResourceApplication, ActionList}:          {},
		{domain.ResourceApplication, ActionRead}:          {check: checkParticipant, adminOverride: true},
		{domain.ResourceApplication, ActionCreate}:        {roles: []domain.Role{domain.RoleApplicant}},
		{domain.ResourceApplication, ActionUpdate}:        applicationUpdate,
		{domain.ResourceApplication, ActionPartialUpdate}: applicationUpdate,
		{domain.ResourceApplication, ActionDelete}:        adminOnly,

		{domain.ResourceUser, ActionList}:          adminOnly,
		{domain.ResourceUser, ActionRead}:          adminOnly,
		{domain.ResourceUser, ActionUpdate}:        adminOnly,
		{domain.ResourceUser, ActionPartialUpdate}: adminOnly,
		{domain.ResourceUser, ActionDelete}:        adminOnly,
	}
	for _, rt := range []domain.ResourceType{domain.ResourceUserProfile, domain.ResourceEmployerProfile} {
		rules[policyKey{rt, ActionList}] = adminOnly
		rules[policyKey{rt, ActionRead}] = rule{check: checkOwner, adminOverride: true}
		rules[policyKey{rt, ActionUpdate}] = owner
		rules[policyKey{rt, ActionPartialUpdate}] = owner
		rules[policyKey{rt, ActionDelete}] = owner
	}

	return &Engine{rules: rules}
}

// Permit is the collection-level check, run before any instance is loaded.
// Rules with an ownership check pass here and must be re-evaluated with
// PermitObject once the instance is known.
func (e *Engine) Permit(p *domain.Principal, action Action, rt domain.ResourceType) error {
	_, err := e.evaluate(p, action, rt)
	return err
}

// PermitObject is the instance-level check.
func (e *Engine) PermitObject(p *domain.Principal, action Action, res domain.Resource) error {
	if res == nil {
		return domain.ErrForbidden
	}
	r, err := e.evaluate(p, action, res.Kind())
	if err != nil || r == nil {
		return err
	}
	if owns(p, res) {
		return nil
	}
	if r.check == checkParticipant {
		if pt, ok := res.(domain.Participant); ok && slices.Contains(pt.ParticipantIDs(), p.ID) {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanList reports whether p may list resources of type rt.
func (e *Engine) CanList(p *domain.Principal, rt domain.ResourceType) bool {
	return e.Permit(p, ActionList, rt) == nil
}

// CanAct reports whether p may perform action on res.
func (e *Engine) CanAct(p *domain.Principal, action Action, res domain.Resource) bool {
	return e.PermitObject(p, action, res) == nil
}

// evaluate applies every step except the ownership comparison. It returns
// the matched rule when the remaining decision depends on ownership, or nil
// when the principal is already allowed.
func (e *Engine) evaluate(p *domain.Principal, action Action, rt domain.ResourceType) (*rule, error) {
	if p.Authenticated() && p.IsSuperuser {
		return nil, nil
	}
	r, ok := e.rules[policyKey{rt, action}]
	if !ok {
		return nil, denial(p)
	}
	if r.public {
		return nil, nil
	}
	if !p.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if r.adminOverride && p.Role == domain.RoleAdmin {
		return nil, nil
	}
	if len(r.roles) > 0 && !slices.Contains(r.roles, p.Role) {
		return nil, domain.ErrForbidden
	}
	if r.check == checkNone {
		return nil, nil
	}
	return &r, nil
}

func owns(p *domain.Principal, res domain.Resource) bool {
	o, ok := res.(domain.Ownable)
	if !ok {
		return false
	}
	id, ok := o.OwnerID()
	return ok && id == p.ID
}

func denial(p *domain.Principal) error {
	if !p.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}
