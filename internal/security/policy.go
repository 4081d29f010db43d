package security

import (
	"github.com/google/uuid"

	"groupmanagement/internal/domain"
)

// Policy decides what an identity may do. Every rule is a pure function of
// the identity, the target organization and the injected configuration.
type Policy struct {
	fakeLoginAllowed bool
}

func NewPolicy(fakeLoginAllowed bool) *Policy {
	return &Policy{fakeLoginAllowed: fakeLoginAllowed}
}

func (p *Policy) FakeLoginAllowed() bool {
	return p.fakeLoginAllowed
}

func (p *Policy) CanCreateOrganization(id *domain.Identity) bool {
	return id.IsSuperuser()
}

func (p *Policy) CanEditOrganization(id *domain.Identity, orgID uuid.UUID) bool {
	return id.IsSuperuser() || id.IsInRole(domain.RoleAdmin, orgID)
}

// CanViewOrganization shares the edit gate: organization details expose the
// member list.
func (p *Policy) CanViewOrganization(id *domain.Identity, orgID uuid.UUID) bool {
	return p.CanEditOrganization(id, orgID)
}

func (p *Policy) CanShowAuthenticationDetails(id *domain.Identity) bool {
	return !id.IsAnonymous() && !domain.IsPublicEmail(id.GetEmail())
}

func (p *Policy) CanBrowseUsers(id *domain.Identity) bool {
	return p.fakeLoginAllowed || id.IsSuperuser() || id.IsInRoleInAnyOrganization(domain.RoleAdmin)
}

func (p *Policy) CanRemoveUser(id *domain.Identity) bool {
	return id.IsSuperuser()
}

func (p *Policy) CanRequestMembership(id *domain.Identity) bool {
	return !id.IsAnonymous()
}
