package auth

import (
	"strings"

	"github.com/fanclubhq/fanclub/internal/domain"
)

// Profile is the identity returned by an OAuth provider's userinfo endpoint.
type Profile struct {
	Provider    string
	ProviderID  string
	Email       string
	DisplayName string
}

// SplitDisplayName splits a provider display name on the first space: the
// first token becomes the first name and the remainder the last name. Empty
// sides fall back to placeholder values so a user record is always complete.
func SplitDisplayName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	first, last = "User", "Name"

	if name == "" {
		return first, last
	}

	idx := strings.IndexByte(name, ' ')
	if idx < 0 {
		return name, last
	}

	if head := strings.TrimSpace(name[:idx]); head != "" {
		first = head
	}
	if tail := strings.TrimSpace(name[idx+1:]); tail != "" {
		last = tail
	}
	return first, last
}

// ResolveIdentity decides what user record an OAuth sign-in maps to. existing
// is the user found by email lookup, or nil. The returned user is the record
// to persist; isNew reports whether it must be created rather than updated.
//
// A new user is created email-verified, since the provider has already
// verified the address. An existing local user gets the provider identity
// attached without touching their name or password.
func ResolveIdentity(existing *domain.User, profile Profile) (user *domain.User, isNew bool) {
	if existing != nil {
		linked := *existing
		linked.AuthProvider = profile.Provider
		linked.ProviderID = profile.ProviderID
		linked.EmailVerified = true
		return &linked, false
	}

	first, last := SplitDisplayName(profile.DisplayName)
	return &domain.User{
		Email:         profile.Email,
		FirstName:     first,
		LastName:      last,
		Role:          domain.RoleMember,
		EmailVerified: true,
		AuthProvider:  profile.Provider,
		ProviderID:    profile.ProviderID,
	}, true
}
