package models

import "time"

// Member types (roles).
const (
	RoleClient    = "client"
	RoleLawyer    = "lawyer"
	RoleAdmin     = "admin"
	RoleFrontdesk = "frontdesk"
	RoleHead      = "head"
)

// Account statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User represents a portal account. Accounts are never hard-deleted; admins
// flip userStatus to inactive instead.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	MemberType   string    `bson:"memberType" json:"memberType"`
	UserStatus   string    `bson:"userStatus" json:"userStatus"`
	ProfilePhoto string    `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	City         string    `bson:"city,omitempty" json:"city,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the name parts for display and notifications.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsStaff reports whether the user holds any staff role.
func (u User) IsStaff() bool {
	switch u.MemberType {
	case RoleLawyer, RoleAdmin, RoleFrontdesk, RoleHead:
		return true
	}
	return false
}
