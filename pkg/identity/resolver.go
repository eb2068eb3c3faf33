package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// Resolver determines which role a display name is acting as, based on
// the locally stored live tutor profile. Every workflow operation that
// needs a role goes through here, so the display-name join key can be
// swapped for a stable identifier in one place.
type Resolver struct {
	store storage.Store
}

// NewResolver creates a Resolver backed by the given store
func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// SetLiveProfile stores the tutor identity this client acts as.
func (r *Resolver) SetLiveProfile(profile *types.TutorProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("live profile requires a name")
	}
	profile.UpdatedAt = time.Now()
	return r.store.SaveTutorProfile(profile)
}

// LiveProfile returns the stored tutor profile, or nil if none is set.
func (r *Resolver) LiveProfile() (*types.TutorProfile, error) {
	profile, err := r.store.GetTutorProfile()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Resolve returns the acting role for a display name: tutor when the
// name matches the live profile, student otherwise.
func (r *Resolver) Resolve(userName string) (types.Role, error) {
	profile, err := r.LiveProfile()
	if err != nil {
		return "", err
	}
	if profile != nil && profile.Name == userName {
		return types.RoleTutor, nil
	}
	return types.RoleStudent, nil
}

// ResolveWithOverride prefers an explicitly supplied role and falls back
// to live-profile resolution when none is given.
func (r *Resolver) ResolveWithOverride(userName string, role types.Role) (types.Role, error) {
	switch role {
	case types.RoleTutor, types.RoleStudent:
		return role, nil
	case "":
		return r.Resolve(userName)
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}
