package client

import (
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/session"
)

// Well-known navigation targets.
const (
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathRoot           = "/"
	PathAdminHome      = "/admin"
	PathAdminBills     = "/admin/bills"
	PathAdminResidents = "/admin/residents"
	PathResidentHome   = "/resident"
)

// Decision is the outcome of a navigation check.
type Decision struct {
	Allow    bool
	Redirect string
	NotFound bool
}

// route describes one navigable path. A nil role means the path is public.
type route struct {
	role *domain.Role
}

var (
	adminRole    = domain.RoleAdmin
	residentRole = domain.RoleResident

	routes = map[string]route{
		PathLogin:          {},
		PathSignup:         {},
		PathRoot:           {},
		PathAdminHome:      {role: &adminRole},
		PathAdminBills:     {role: &adminRole},
		PathAdminResidents: {role: &adminRole},
		PathResidentHome:   {role: &residentRole},
	}
)

// Navigate decides whether the principal may visit path. It runs on every
// navigation, not just once at load, since the principal can change at
// runtime. Policy: absent principal on a protected path redirects to login;
// a role mismatch redirects to the principal's own home, never to the denied
// path; unknown paths are a not-found, not a redirect.
func Navigate(principal *session.Principal, path string) Decision {
	r, known := routes[path]
	if !known {
		return Decision{NotFound: true}
	}

	if path == PathRoot {
		if !principal.Authenticated() {
			return Decision{Redirect: PathLogin}
		}
		return Decision{Redirect: RoleHome(principal.Role)}
	}

	if r.role == nil {
		return Decision{Allow: true}
	}

	if !principal.Authenticated() {
		return Decision{Redirect: PathLogin}
	}
	if principal.Role != *r.role {
		return Decision{Redirect: RoleHome(principal.Role)}
	}
	return Decision{Allow: true}
}

// RoleHome maps a role to its landing path.
func RoleHome(role domain.Role) string {
	if role == domain.RoleAdmin {
		return PathAdminHome
	}
	return PathResidentHome
}
