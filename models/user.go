package models

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is a member profile together with the devices it is signed in on.
type User struct {
	ID             string       `bson:"id" json:"id"`
	Email          string       `bson:"email" json:"email"`
	PasswordHash   string       `bson:"passwordHash,omitempty" json:"-"`
	DisplayName    string       `bson:"displayName" json:"displayName"`
	Organization   string       `bson:"organization,omitempty" json:"organization,omitempty"`
	Chapter        string       `bson:"chapter,omitempty" json:"chapter,omitempty"`
	InitiationYear int          `bson:"initiationYear,omitempty" json:"initiationYear,omitempty"`
	Bio            string       `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL      string       `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	AvatarPublicID string       `bson:"avatarPublicId,omitempty" json:"-"`
	Role           string       `bson:"role" json:"role"`
	EmailUpdates   bool         `bson:"emailUpdates" json:"emailUpdates"`
	Devices        []Device     `bson:"devices" json:"devices,omitempty"`
	Demo           DemoSettings `bson:"demo" json:"demo"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Device is one signed-in client. TokenHash is the SHA-256 of the token last
// issued to it; a new sign-in on the same device replaces it.
type Device struct {
	DeviceID   string    `bson:"deviceId" json:"deviceId"`
	DeviceName string    `bson:"deviceName" json:"deviceName"`
	IP         string    `bson:"ip" json:"ip"`
	LastLogin  time.Time `bson:"lastLogin" json:"lastLogin"`
	TokenHash  string    `bson:"tokenHash" json:"-"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	DisplayName    string `json:"displayName" binding:"required,max=80"`
	Organization   string `json:"organization" binding:"max=120"`
	Chapter        string `json:"chapter" binding:"max=120"`
	InitiationYear int    `json:"initiationYear"`
	EmailUpdates   bool   `json:"emailUpdates"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile update; empty fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName    string `json:"displayName" binding:"max=80"`
	Organization   string `json:"organization" binding:"max=120"`
	Chapter        string `json:"chapter" binding:"max=120"`
	InitiationYear int    `json:"initiationYear"`
	Bio            string `json:"bio" binding:"max=1000"`
	EmailUpdates   *bool  `json:"emailUpdates"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
