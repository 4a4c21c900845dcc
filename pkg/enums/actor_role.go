package enums

// ActorRole distinguishes customer tokens from admin console tokens.
type ActorRole string

const (
	ActorRoleUser  ActorRole = "user"
	ActorRoleAdmin ActorRole = "admin"
)

// IsValid reports whether the role is one of the supported values.
func (r ActorRole) IsValid() bool {
	switch r {
	case ActorRoleUser, ActorRoleAdmin:
		return true
	}
	return false
}

func (r ActorRole) String() string {
	return string(r)
}
