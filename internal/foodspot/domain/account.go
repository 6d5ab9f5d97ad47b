package domain

import "time"

// UserAccount is a consumer account. Emails are unique across both account
// kinds, enforced by the email registry.
type UserAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id PHC or legacy bcrypt
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BusinessAccount is a restaurant account that owns food items.
type BusinessAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Description  string
	Address      string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity projects the account onto its session identity.
func (u UserAccount) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, Role: RoleUser}
}

// Identity projects the account onto its session identity.
func (b BusinessAccount) Identity() Identity {
	return Identity{ID: b.ID, Name: b.Name, Email: b.Email, Image: b.Image, Role: RoleBusiness}
}
