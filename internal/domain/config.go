package domain

// ConfigurationModel is the non-secret runtime configuration served to the
// front end.
type ConfigurationModel struct {
	CodeListURL        string `json:"codeListUrl"`
	DataModelURL       string `json:"dataModelUrl"`
	TerminologyURL     string `json:"terminologyUrl"`
	CommentsURL        string `json:"commentsUrl"`
	Dev                bool   `json:"dev"`
	Env                string `json:"env"`
	FakeLoginAllowed   bool   `json:"fakeLoginAllowed"`
	ImpersonateAllowed bool   `json:"impersonateAllowed"`
	MessagingEnabled   bool   `json:"messagingEnabled"`
}

type TokenModel struct {
	Token string `json:"token"`
}
