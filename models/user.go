package models

import (
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a privilege marker stored on the user record and carried in
// access tokens. Ordinary users hold RoleUser only.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// Account status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Fixed catalogs for the default dicebear avatar. Read-only.
var avatarSeeds = [...]string{
	"Garfield", "Tinkerbell", "Annie", "Loki", "Cleo", "Angel", "Bob",
	"Mia", "Coco", "Gracie", "Bear", "Bella", "Abby", "Harley", "Cali",
	"Leo", "Luna", "Jack", "Felix", "Kiki",
}

var avatarCollections = [...]string{
	"notionists-neutral", "adventurer-neutral", "fun-emoji",
}

// SocialLinks holds optional profile links.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Github    string `bson:"github,omitempty" json:"github,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
}

// PersonalInfo is the identity/profile block nested inside the user
// document. Password is the bcrypt hash; it never appears in JSON output.
type PersonalInfo struct {
	PersonalID string `bson:"personal_id" json:"personal_id"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Password   string `bson:"password" json:"-"`
	Program    string `bson:"program,omitempty" json:"program,omitempty"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio        string `bson:"bio,omitempty" json:"bio,omitempty"` // max 250 chars
	Roles      []Role `bson:"role" json:"role"`
	Avatar     string `bson:"avatar" json:"avatar"`
	Status     string `bson:"status" json:"status"` // active or inactive
}

// User is a user document in the "users" collection.
// OTP and OTPExpiresAt are either both set (verification pending) or both
// absent; they are cleared together when the email is verified.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonalInfo PersonalInfo       `bson:"personal_info" json:"personal_info"`
	SocialLinks  SocialLinks        `bson:"social_links" json:"social_links"`
	OTP          string             `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt time.Time          `bson:"otp_expires_at,omitempty" json:"-"`
	IsVerified   bool               `bson:"is_verified" json:"is_verified"`
	JoinedAt     time.Time          `bson:"joined_at" json:"joined_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return HasAdmin(u.PersonalInfo.Roles)
}

// HasAdmin reports whether a role set contains RoleAdmin.
func HasAdmin(roles []Role) bool {
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// DefaultAvatar picks a random style/seed combination from the fixed
// catalogs and returns the dicebear URL for it.
func DefaultAvatar() string {
	collection := avatarCollections[rand.Intn(len(avatarCollections))]
	seed := avatarSeeds[rand.Intn(len(avatarSeeds))]
	return "https://api.dicebear.com/6.x/" + collection + "/svg?seed=" + seed
}
