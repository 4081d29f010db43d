package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated caller of a request. The zero value with
// Anonymous set stands for an unauthenticated caller.
type Identity struct {
	ID                   uuid.UUID              `json:"id"`
	Email                string                 `json:"email"`
	FirstName            string                 `json:"firstName"`
	LastName             string                 `json:"lastName"`
	Superuser            bool                   `json:"superuser"`
	Anonymous            bool                   `json:"anonymous"`
	NewlyCreated         bool                   `json:"newlyCreated"`
	CreatedAt            *time.Time             `json:"creationDateTime,omitempty"`
	RemovedAt            *time.Time             `json:"removalDateTime,omitempty"`
	RolesInOrganizations map[uuid.UUID][]string `json:"rolesInOrganizations"`
}

// AnonymousIdentity returns the identity used when no credentials are present.
func AnonymousIdentity() *Identity {
	return &Identity{Anonymous: true, RolesInOrganizations: map[uuid.UUID][]string{}}
}

// IdentityFromUser builds an identity from a stored user and its roles.
func IdentityFromUser(u *UserWithRolesInOrganizations) *Identity {
	roles := make(map[uuid.UUID][]string, len(u.Organizations))
	for _, o := range u.Organizations {
		roles[o.ID] = append([]string(nil), o.Roles...)
	}
	created := u.CreationDateTime
	return &Identity{
		ID:                   u.ID,
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Superuser:            u.Superuser,
		CreatedAt:            &created,
		RemovedAt:            u.RemovalDateTime,
		RolesInOrganizations: roles,
	}
}

func (i *Identity) IsSuperuser() bool {
	return i != nil && !i.Anonymous && i.Superuser
}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i.Anonymous
}

func (i *Identity) GetEmail() string {
	if i == nil {
		return ""
	}
	return i.Email
}

func (i *Identity) IsInRole(role string, orgID uuid.UUID) bool {
	if i.IsAnonymous() {
		return false
	}
	for _, r := range i.RolesInOrganizations[orgID] {
		if r == role {
			return true
		}
	}
	return false
}

func (i *Identity) IsInRoleInAnyOrganization(role string) bool {
	return len(i.Organizations(role)) > 0
}

// Organizations returns the ids of organizations where the identity holds role.
func (i *Identity) Organizations(role string) []uuid.UUID {
	if i.IsAnonymous() {
		return nil
	}
	var ids []uuid.UUID
	for orgID, roles := range i.RolesInOrganizations {
		for _, r := range roles {
			if r == role {
				ids = append(ids, orgID)
				break
			}
		}
	}
	return ids
}
