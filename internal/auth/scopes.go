package auth

// Known OAuth scopes used by the tracker API.
const (
	ScopeSessionsWrite = "sessions:write"
	ScopeSessionsRead  = "sessions:read"
)
