package domain

import "time"

// User represents a platform account. Profile fields live on the same row so
// a profile always exists from the moment the account is created.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	IsStaff          bool      `json:"is_staff"`
	IsSuperuser      bool      `json:"is_superuser"`
	CanCreateContent bool      `json:"can_create_content"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	IsActive         bool      `json:"is_active"`
	DateJoined       time.Time `json:"date_joined"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPrivileged reports whether the user may perform administrative
// operations (staff or superuser).
func (u *User) IsPrivileged() bool {
	return u.IsStaff || u.IsSuperuser
}

// CanPublish reports whether the user may create news and events.
func (u *User) CanPublish() bool {
	return u.IsPrivileged() || u.CanCreateContent
}

// CanModify reports whether the user may mutate a resource owned by
// authorID: owners and privileged users only.
func (u *User) CanModify(authorID string) bool {
	return u.ID == authorID || u.IsPrivileged()
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		name := u.FirstName
		if u.LastName != "" {
			name += " " + u.LastName
		}
		return name
	}
	return u.Username
}

// RoleLabel returns the human-readable role shown next to authored content.
func (u *User) RoleLabel() string {
	switch {
	case u.IsPrivileged():
		return "Administrator"
	case u.CanCreateContent:
		return "Content Creator"
	default:
		return "Member"
	}
}

// Claims holds the identity extracted from a verified access token.
type Claims struct {
	UserID      string
	Username    string
	Email       string
	IsStaff     bool
	IsSuperuser bool
}

// Privileged reports whether the token bearer carries an administrative flag.
func (c *Claims) Privileged() bool {
	return c.IsStaff || c.IsSuperuser
}

// Session represents a refresh-token session.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	IP           string    `json:"ip"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenPair holds a signed access token and its refresh counterpart.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
