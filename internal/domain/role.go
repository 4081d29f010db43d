package domain

// RoleAdmin is the organization role that grants management rights. The
// remaining role names are loaded from the store.
const RoleAdmin = "ADMIN"

// Language codes used for localized organization names and descriptions.
const (
	LangFi = "fi"
	LangEn = "en"
	LangSv = "sv"
)

// PublicEmailDomain is the reserved local-test domain. Users with an email in
// this domain are "public" and may be listed without authentication details.
const PublicEmailDomain = "@localhost"
