package auth

import "github.com/spec-kit/auth-gateway/internal/domain"

// Requirement is the access level a path demands. A zero Role with
// Public=false means any authenticated caller is acceptable.
type Requirement struct {
	Public bool
	Role   domain.Role
}

// Policy is the static path-to-role table consulted before any handler runs.
// Rules are evaluated in order: public paths first, then role-gated paths,
// then the authenticated-only fallthrough for everything else.
type Policy struct {
	public map[string]struct{}
	roles  map[string]domain.Role
}

// NewPolicy builds an empty policy where every path requires authentication.
func NewPolicy() *Policy {
	return &Policy{
		public: make(map[string]struct{}),
		roles:  make(map[string]domain.Role),
	}
}

// Permit marks paths as accessible without a token.
func (p *Policy) Permit(paths ...string) *Policy {
	for _, path := range paths {
		p.public[path] = struct{}{}
	}
	return p
}

// RequireRole gates a path behind an exact role match.
func (p *Policy) RequireRole(path string, role domain.Role) *Policy {
	p.roles[path] = role
	return p
}

// Evaluate returns the requirement for a request path.
func (p *Policy) Evaluate(path string) Requirement {
	if _, ok := p.public[path]; ok {
		return Requirement{Public: true}
	}
	if role, ok := p.roles[path]; ok {
		return Requirement{Role: role}
	}
	return Requirement{}
}

// DefaultPolicy mirrors the gateway's access table: login, main and join are
// open, /admin demands ROLE_ADMIN, health probes are operational and open,
// and any other path merely requires a valid token.
func DefaultPolicy() *Policy {
	return NewPolicy().
		Permit("/login", "/", "/join", "/health/live", "/health/ready").
		RequireRole("/admin", domain.RoleAdmin)
}
