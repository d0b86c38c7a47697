// Package authz holds the role based access policy of the service.
package authz

import (
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

const (
	ObjUsers = "users"

	ActRead = "read"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// policies are (role, object, action) grants.
var policies = [][]string{
	{"admin", ObjUsers, ActRead},
}

// NewEnforcer returns an enforcer loaded with the built-in policies.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	return e, nil
}
