package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRequest is a pending membership request. Accepting or declining it
// deletes the row.
type UserRequest struct {
	ID             int       `json:"id"`
	UserEmail      string    `json:"email"`
	OrganizationID uuid.UUID `json:"organizationId"`
	RoleName       string    `json:"role"`
	Sent           bool      `json:"sent"`
	CreatedAt      time.Time `json:"creationDate"`
}

// UserRequestModel is the payload of POST /api/request.
type UserRequestModel struct {
	Email          string    `json:"email"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Role           string    `json:"role"`
}

type UserRequestWithOrganization struct {
	ID               int               `json:"id"`
	Email            string            `json:"email"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	OrganizationID   uuid.UUID         `json:"organizationId"`
	OrganizationName map[string]string `json:"organizationName"`
	Role             string            `json:"role"`
	Sent             bool              `json:"sent"`
	CreatedAt        time.Time         `json:"creationDate"`
}

// PublicUserRequest groups the roles a user has requested in one organization.
type PublicUserRequest struct {
	OrganizationID uuid.UUID `json:"organizationId"`
	Roles          []string  `json:"role"`
}
