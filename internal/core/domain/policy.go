package domain

// RouteKey endereça uma entrada da tabela de acesso.
type RouteKey struct {
	Method  string
	Pattern string
}

// AccessPolicy mapeia cada rota aos papéis mínimos exigidos. Uma lista vazia
// de papéis libera acesso anônimo. Carregada uma vez na subida do processo e
// somente lida depois disso.
type AccessPolicy map[RouteKey][]Role

// Roles devolve os papéis exigidos pela rota; nil quando anônima.
func (p AccessPolicy) Roles(method, pattern string) []Role {
	return p[RouteKey{Method: method, Pattern: pattern}]
}

func (p AccessPolicy) AllowsAnonymous(method, pattern string) bool {
	return len(p.Roles(method, pattern)) == 0
}

var authenticated = []Role{RoleUser, RoleEmployer, RoleAdmin}

// DefaultAccessPolicy é a tabela de acesso da API.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		{Method: "GET", Pattern: "/health"}:          nil,
		{Method: "POST", Pattern: "/v1/auth/token"}:  nil,
		{Method: "GET", Pattern: "/v1/auth/me"}:      authenticated,
		{Method: "GET", Pattern: "/v1/jobs"}:         nil,
		{Method: "POST", Pattern: "/v1/jobs"}:        {RoleEmployer, RoleAdmin},
		{Method: "PUT", Pattern: "/v1/jobs/{id}"}:    {RoleEmployer, RoleAdmin},
		{Method: "DELETE", Pattern: "/v1/jobs/{id}"}: {RoleAdmin},
		{Method: "GET", Pattern: "/v1/skills"}:       nil,
		{Method: "POST", Pattern: "/v1/skills"}:      {RoleAdmin},
	}
}
