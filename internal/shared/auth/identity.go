package auth

// Roles, in increasing order of privilege.
const (
	RoleEditor    = "editor"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Identity is the verified caller identity resolved from the session
// token. It is threaded explicitly through every service call; services
// never read the request context for it.
type Identity struct {
	UserID   int64
	UserName string
	Role     string
}

// CanSubmit reports whether the identity may file submissions.
func (i Identity) CanSubmit() bool {
	return i.Role == RoleEditor || i.Role == RoleModerator || i.Role == RoleAdmin
}

// CanModerate reports whether the identity may approve or reject
// pending entries.
func (i Identity) CanModerate() bool {
	return i.Role == RoleModerator || i.Role == RoleAdmin
}

// IsAdmin reports whether the identity may manage users.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
