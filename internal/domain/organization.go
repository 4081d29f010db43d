package domain

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID            uuid.UUID `json:"id"`
	URL           string    `json:"url"`
	NameFi        string    `json:"nameFi"`
	NameEn        string    `json:"nameEn"`
	NameSv        string    `json:"nameSv"`
	DescriptionFi string    `json:"descriptionFi"`
	DescriptionEn string    `json:"descriptionEn"`
	DescriptionSv string    `json:"descriptionSv"`
	Removed       bool      `json:"removed"`
	Modified      time.Time `json:"-"`
}

// Names returns the localized names keyed by language code.
func (o *Organization) Names() map[string]string {
	return map[string]string{LangFi: o.NameFi, LangEn: o.NameEn, LangSv: o.NameSv}
}

// Descriptions returns the localized descriptions keyed by language code.
func (o *Organization) Descriptions() map[string]string {
	return map[string]string{LangFi: o.DescriptionFi, LangEn: o.DescriptionEn, LangSv: o.DescriptionSv}
}

type OrganizationListItem struct {
	ID          uuid.UUID         `json:"id"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	URL         string            `json:"url"`
	Removed     bool              `json:"removed"`
}

// NewOrganizationListItem flattens an organization into its list form.
func NewOrganizationListItem(o *Organization) OrganizationListItem {
	return OrganizationListItem{
		ID:          o.ID,
		Name:        o.Names(),
		Description: o.Descriptions(),
		URL:         o.URL,
		Removed:     o.Removed,
	}
}

// CreateOrganization is the payload of POST /api/organization.
type CreateOrganization struct {
	URL             string   `json:"url"`
	NameFi          string   `json:"nameFi"`
	NameEn          string   `json:"nameEn"`
	NameSv          string   `json:"nameSv"`
	DescriptionFi   string   `json:"descriptionFi"`
	DescriptionEn   string   `json:"descriptionEn"`
	DescriptionSv   string   `json:"descriptionSv"`
	AdminUserEmails []string `json:"adminUserEmails"`
}

type EmailRole struct {
	UserEmail string `json:"userEmail"`
	Role      string `json:"role"`
}

// UpdateOrganization carries the organization fields and the complete role
// list that replaces the current assignments.
type UpdateOrganization struct {
	Organization Organization `json:"organization"`
	UserRoles    []EmailRole  `json:"userRoles"`
}

type OrganizationWithUsers struct {
	Organization   *Organization   `json:"organization"`
	Users          []UserWithRoles `json:"users"`
	AvailableRoles []string        `json:"availableRoles"`
}

// PublicOrganization is the organization shape exposed to integrating services.
type PublicOrganization struct {
	ID          uuid.UUID         `json:"uuid"`
	PrefLabel   map[string]string `json:"prefLabel"`
	Description map[string]string `json:"description"`
	URL         string            `json:"url"`
	Removed     bool              `json:"removed"`
}

func NewPublicOrganization(o *Organization) PublicOrganization {
	return PublicOrganization{
		ID:          o.ID,
		PrefLabel:   o.Names(),
		Description: o.Descriptions(),
		URL:         o.URL,
		Removed:     o.Removed,
	}
}
