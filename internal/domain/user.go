package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Superuser bool       `json:"superuser"`
	CreatedAt time.Time  `json:"creationDateTime"`
	RemovedAt *time.Time `json:"removalDateTime,omitempty"`
}

// IsPublicEmail reports whether email belongs to the reserved local-test domain.
func IsPublicEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), PublicEmailDomain)
}

// UserWithRoles is a member of a single organization.
type UserWithRoles struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type OrganizationRoles struct {
	ID    uuid.UUID `json:"uuid"`
	Roles []string  `json:"roles"`
}

type UserWithRolesInOrganizations struct {
	ID               uuid.UUID           `json:"id"`
	Email            string              `json:"email"`
	FirstName        string              `json:"firstName"`
	LastName         string              `json:"lastName"`
	Superuser        bool                `json:"superuser"`
	CreationDateTime time.Time           `json:"creationDateTime"`
	RemovalDateTime  *time.Time          `json:"removalDateTime,omitempty"`
	Organizations    []OrganizationRoles `json:"organization"`
}

// RolesIn returns the roles the user holds in orgID.
func (u *UserWithRolesInOrganizations) RolesIn(orgID uuid.UUID) []string {
	for _, o := range u.Organizations {
		if o.ID == orgID {
			return o.Roles
		}
	}
	return nil
}

type PublicUserListItem struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// NewUser is the payload for creating a user through the public API.
type NewUser struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
