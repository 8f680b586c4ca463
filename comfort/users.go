package comfort

type Role string

const (
	RoleUser       Role = "user"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ValidRole reports whether r belongs to the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Created  string `json:"created_at,omitempty"`
}

// CanAdminister reports whether the user may reach the administrative
// CRUD surface. Only superadmins qualify; editors and admins are
// limited to surfaces outside this layer.
func (u User) CanAdminister() bool {
	return u.Role == RoleSuperAdmin
}
