// Package access decides whether a caller may perform an action. Role
// capabilities live in a casbin policy table; ownership rules stay with the
// services that own the data.
package access

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"recruitment-hub/internal/domain"
)

type Resource string

const (
	ResourceAccount      Resource = "account"
	ResourceVacancy      Resource = "vacancy"
	ResourceApplication  Resource = "application"
	ResourceResume       Resource = "resume"
	ResourceInterview    Resource = "interview"
	ResourceFeedback     Resource = "feedback"
	ResourceNotification Resource = "notification"
	ResourceDashboard    Resource = "dashboard"
	ResourceAudit        Resource = "audit"
	ResourceSubscription Resource = "subscription"
)

type Action string

const (
	ActionRead     Action = "read"
	ActionList     Action = "list"
	ActionListMine Action = "list_mine"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionCancel   Action = "cancel"
	ActionUpload   Action = "upload"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type rule struct {
	resource Resource
	action   Action
	roles    []domain.Role
}

var (
	hrOnly        = []domain.Role{domain.RoleHR}
	candidateOnly = []domain.Role{domain.RoleCandidate}
	everyone      = []domain.Role{domain.RoleHR, domain.RoleCandidate}
)

var defaultRules = []rule{
	{ResourceAccount, ActionRead, everyone},
	{ResourceAccount, ActionList, everyone},
	{ResourceAccount, ActionUpdate, everyone},
	{ResourceAccount, ActionDelete, everyone},

	{ResourceVacancy, ActionListMine, hrOnly},
	{ResourceVacancy, ActionCreate, hrOnly},
	{ResourceVacancy, ActionUpdate, hrOnly},
	{ResourceVacancy, ActionDelete, hrOnly},

	{ResourceApplication, ActionList, hrOnly},
	{ResourceApplication, ActionListMine, candidateOnly},
	{ResourceApplication, ActionRead, everyone},
	{ResourceApplication, ActionCreate, candidateOnly},
	{ResourceApplication, ActionUpdate, hrOnly},
	{ResourceApplication, ActionDelete, candidateOnly},
	{ResourceResume, ActionUpload, candidateOnly},

	{ResourceInterview, ActionList, everyone},
	{ResourceInterview, ActionListMine, everyone},
	{ResourceInterview, ActionRead, everyone},
	{ResourceInterview, ActionCreate, hrOnly},
	{ResourceInterview, ActionUpdate, hrOnly},
	{ResourceInterview, ActionCancel, hrOnly},

	{ResourceFeedback, ActionList, everyone},
	{ResourceFeedback, ActionRead, everyone},
	{ResourceFeedback, ActionCreate, hrOnly},
	{ResourceFeedback, ActionUpdate, hrOnly},
	{ResourceFeedback, ActionDelete, hrOnly},

	{ResourceNotification, ActionList, everyone},
	{ResourceNotification, ActionUpdate, everyone},
	{ResourceNotification, ActionDelete, everyone},

	{ResourceDashboard, ActionRead, everyone},
	{ResourceAudit, ActionList, hrOnly},
	{ResourceSubscription, ActionRead, everyone},
}

var (
	ErrUnauthenticated = domain.NewUnauthenticatedError("You must be logged in")
)

// Gate is consulted by every service operation that needs a caller.
type Gate interface {
	RequireAuthenticated(caller *domain.Account) error
	RequireRole(caller *domain.Account, roles ...domain.Role) error
	Authorize(caller *domain.Account, resource Resource, action Action) error
}

type casbinGate struct {
	enforcer *casbin.Enforcer
}

// NewGate builds a gate over the built-in role policy.
func NewGate() (Gate, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create access enforcer: %w", err)
	}

	var policies [][]string
	for _, r := range defaultRules {
		for _, role := range r.roles {
			policies = append(policies, []string{string(role), string(r.resource), string(r.action)})
		}
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	return &casbinGate{enforcer: enforcer}, nil
}

// MustNewGate is NewGate for wiring code where the policy is static.
func MustNewGate() Gate {
	g, err := NewGate()
	if err != nil {
		panic(err)
	}
	return g
}

func (g *casbinGate) RequireAuthenticated(caller *domain.Account) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	return nil
}

func (g *casbinGate) RequireRole(caller *domain.Account, roles ...domain.Role) error {
	if err := g.RequireAuthenticated(caller); err != nil {
		return err
	}
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return RoleError(roles...)
}

func (g *casbinGate) Authorize(caller *domain.Account, resource Resource, action Action) error {
	if err := g.RequireAuthenticated(caller); err != nil {
		return err
	}

	allowed, err := g.enforcer.Enforce(string(caller.Role), string(resource), string(action))
	if err != nil {
		return fmt.Errorf("failed to evaluate access policy: %w", err)
	}
	if allowed {
		return nil
	}

	rows, err := g.enforcer.GetFilteredPolicy(1, string(resource), string(action))
	if err != nil {
		return fmt.Errorf("failed to read access policy: %w", err)
	}
	permitted := make(map[domain.Role]bool, len(rows))
	for _, row := range rows {
		permitted[domain.Role(row[0])] = true
	}

	var roles []domain.Role
	for _, role := range domain.AllRoles() {
		if permitted[role] {
			roles = append(roles, role)
		}
	}
	return RoleError(roles...)
}

// RoleError is the Forbidden error reported when the caller's role is not
// among roles.
func RoleError(roles ...domain.Role) error {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return domain.NewForbiddenError("This action requires one of these roles: " + strings.Join(names, ", "))
}
