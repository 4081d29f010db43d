package config

type SecurityLevel int

const (
	SecurityPublic        SecurityLevel = iota // Anonymous callers allowed
	SecurityAuthenticated                      // A resolved user is required
)

// EndpointSecurityConfig maps "METHOD route-template" to its security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Front end - Public
	"GET /api/authenticated-user":          SecurityPublic,
	"GET /api/config":                      SecurityPublic,
	"GET /api/organizations":               SecurityPublic,
	"GET /api/organizations/{showRemoved}": SecurityPublic,
	"GET /api/roles":                       SecurityPublic,
	"GET /api/users":                       SecurityPublic,
	"GET /api/testUsers":                   SecurityPublic,

	// Front end - Authenticated
	"GET /api/organization/{id}":        SecurityAuthenticated,
	"POST /api/organization":            SecurityAuthenticated,
	"PUT /api/organization":             SecurityAuthenticated,
	"GET /api/usersForOwnOrganizations": SecurityAuthenticated,
	"POST /api/removeuser/{email}/":     SecurityAuthenticated,
	"GET /api/requests":                 SecurityAuthenticated,
	"POST /api/request":                 SecurityAuthenticated,
	"DELETE /api/request/{id}":          SecurityAuthenticated,
	"POST /api/request/{id}":            SecurityAuthenticated,
	"POST /api/token":                   SecurityAuthenticated,
	"DELETE /api/token":                 SecurityAuthenticated,
	"GET /debug":                        SecurityAuthenticated,

	// Operations
	"GET /health": SecurityPublic,

	// Public API - reached by integrating services on the internal network
	"GET /public-api/user":                  SecurityPublic,
	"POST /public-api/user":                 SecurityPublic,
	"GET /public-api/users":                 SecurityPublic,
	"GET /public-api/modifiedUsers":         SecurityPublic,
	"GET /public-api/organizations":         SecurityPublic,
	"GET /public-api/validOrganizations":    SecurityPublic,
	"GET /public-api/modifiedOrganizations": SecurityPublic,
	"POST /public-api/request":              SecurityPublic,
	"GET /public-api/requests":              SecurityPublic,
}

// GetSecurityLevel returns the security level for a method and route template
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to the strictest level for unknown endpoints
	return SecurityAuthenticated
}
