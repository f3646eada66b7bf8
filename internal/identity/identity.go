// Package identity is the single source of truth for "who is signed in". Every
// consumer reads the current identity through Provider, and listeners learn about
// sign-ins and sign-outs through its change stream.
package identity

import (
	"encoding/gob"
	"strings"

	"github.com/google/uuid"
	"github.com/markbates/goth"
)

const DevProvider = "dev"

type Identity struct {
	// Subject is the opaque id the admin record binds to: "<provider>:<user id>".
	Subject   string
	Provider  string
	Email     string
	Name      string
	AvatarURL *string
}

func init() {
	gob.Register(Identity{})
}

func Subject(provider, userID string) string {
	return provider + ":" + userID
}

// FromGothUser maps an OAuth result to an identity.
func FromGothUser(u goth.User) Identity {
	name := u.Name
	if name == "" {
		name = u.NickName
	}
	return Identity{
		Subject:   Subject(u.Provider, u.UserID),
		Provider:  u.Provider,
		Email:     u.Email,
		Name:      name,
		AvatarURL: stringOrNil(u.AvatarURL),
	}
}

// Dev builds a local development identity. The same e-mail always maps to the
// same subject.
func Dev(email string) Identity {
	email = strings.ToLower(strings.TrimSpace(email))
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(email))
	name, _, _ := strings.Cut(email, "@")
	return Identity{
		Subject:  Subject(DevProvider, id.String()),
		Provider: DevProvider,
		Email:    email,
		Name:     name,
	}
}

// DisplayName is what the navigation shows for a signed in identity.
func (i *Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return i.Subject
	}
}

func (i *Identity) Avatar() string {
	if i.AvatarURL == nil {
		return ""
	}
	return *i.AvatarURL
}

// stringOrNil returns nil for an empty or all whitespace string.
func stringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
