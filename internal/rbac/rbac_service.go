package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles known to the system.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Static policy: the role set is fixed, so the table lives in code instead of
// a policy store.
var policies = [][]string{
	{RoleAdmin, "employee", "read"},
	{RoleAdmin, "employee", "create"},
	{RoleAdmin, "employee", "update"},
	{RoleAdmin, "employee", "delete"},
	{RoleAdmin, "stats", "read"},

	{RoleManager, "employee", "read"},
	{RoleManager, "employee", "create"},
	{RoleManager, "employee", "update"},
	{RoleManager, "stats", "read"},

	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "stats", "read"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// HasAnyRole reports whether the role is one of the allowed set. Kept as the
// primitive for callers that gate on role membership rather than a
// resource/action pair.
func HasAnyRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
