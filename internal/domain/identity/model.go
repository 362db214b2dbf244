package identity

import (
	"strings"
	"time"

	"github.com/neuroscreen/neuroscreen/internal/platform/db"
)

// Role is the closed set of user roles. Each role owns its own collection;
// anything else is rejected at the boundary.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ParseRole normalizes and validates a role string from a request.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(s)) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	default:
		return "", ErrInvalidRole
	}
}

// Collection returns the store collection holding users of this role.
func (r Role) Collection() string {
	if r == RoleDoctor {
		return db.CollDoctors
	}
	return db.CollPatients
}

func (r Role) String() string { return string(r) }

// User is a registered patient or doctor. The password hash never leaves the
// server. Users are immutable after registration.
type User struct {
	ID           string `json:"id"`
	Role         Role   `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// Patient profile
	Age    *int    `json:"age,omitempty"`
	Gender *string `json:"gender,omitempty"`

	// Doctor profile
	Specialty *string `json:"specialty,omitempty"`
	Hospital  *string `json:"hospital,omitempty"`
}

func (u *User) document() db.Document {
	doc := db.Document{
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
	}
	if u.Age != nil {
		doc["age"] = *u.Age
	}
	if u.Gender != nil {
		doc["gender"] = *u.Gender
	}
	if u.Specialty != nil {
		doc["specialty"] = *u.Specialty
	}
	if u.Hospital != nil {
		doc["hospital"] = *u.Hospital
	}
	return doc
}

func userFromDocument(role Role, doc db.Document) *User {
	u := &User{Role: role}
	u.ID, _ = doc["_id"].(string)
	u.Name, _ = doc["name"].(string)
	u.Email, _ = doc["email"].(string)
	u.PasswordHash, _ = doc["password_hash"].(string)
	if v, ok := doc["age"].(int); ok {
		u.Age = &v
	} else if v, ok := doc["age"].(int32); ok {
		age := int(v)
		u.Age = &age
	} else if v, ok := doc["age"].(float64); ok {
		age := int(v)
		u.Age = &age
	}
	if v, ok := doc["gender"].(string); ok {
		u.Gender = &v
	}
	if v, ok := doc["specialty"].(string); ok {
		u.Specialty = &v
	}
	if v, ok := doc["hospital"].(string); ok {
		u.Hospital = &v
	}
	return u
}

// Session proves that the bearer of Token authenticated as UserID in Role.
// Many sessions may exist per user; each token resolves to exactly one
// session. ExpiresAt is nil when sessions are configured to never expire.
type Session struct {
	UserID    string     `json:"user_id"`
	Role      Role       `json:"role"`
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (s *Session) document() db.Document {
	doc := db.Document{
		"user_id":    s.UserID,
		"role":       string(s.Role),
		"token":      s.Token,
		"created_at": s.CreatedAt,
	}
	if s.ExpiresAt != nil {
		doc["expires_at"] = *s.ExpiresAt
	}
	return doc
}

func sessionFromDocument(doc db.Document) *Session {
	s := &Session{}
	s.UserID, _ = doc["user_id"].(string)
	if role, ok := doc["role"].(string); ok {
		s.Role = Role(role)
	}
	s.Token, _ = doc["token"].(string)
	if v, ok := doc["created_at"].(time.Time); ok {
		s.CreatedAt = v
	}
	if v, ok := doc["expires_at"].(time.Time); ok {
		s.ExpiresAt = &v
	}
	return s
}
