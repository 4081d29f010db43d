package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/service"
)

// FrontendHandler serves the /api routes used by the web front end.
type FrontendHandler struct {
	orgSvc     service.OrganizationService
	userSvc    service.UserService
	requestSvc service.RequestService
	tokenSvc   service.TokenService
	configSvc  service.ConfigurationService
}

func NewFrontendHandler(
	orgSvc service.OrganizationService,
	userSvc service.UserService,
	requestSvc service.RequestService,
	tokenSvc service.TokenService,
	configSvc service.ConfigurationService,
) *FrontendHandler {
	return &FrontendHandler{
		orgSvc:     orgSvc,
		userSvc:    userSvc,
		requestSvc: requestSvc,
		tokenSvc:   tokenSvc,
		configSvc:  configSvc,
	}
}

func (h *FrontendHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/authenticated-user", h.GetAuthenticatedUser).Methods(http.MethodGet)
	r.HandleFunc("/api/config", h.GetConfiguration).Methods(http.MethodGet)

	r.HandleFunc("/api/organizations", h.ListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/api/organizations/{showRemoved}", h.ListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/api/organization/{id}", h.GetOrganization).Methods(http.MethodGet)
	r.HandleFunc("/api/organization", h.CreateOrganization).Methods(http.MethodPost)
	r.HandleFunc("/api/organization", h.UpdateOrganization).Methods(http.MethodPut)
	r.HandleFunc("/api/roles", h.ListRoles).Methods(http.MethodGet)

	r.HandleFunc("/api/usersForOwnOrganizations", h.GetUsersForOwnOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/api/users", h.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/testUsers", h.GetTestUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/removeuser/{email}/", h.RemoveUser).Methods(http.MethodPost)

	r.HandleFunc("/api/requests", h.GetAllUserRequests).Methods(http.MethodGet)
	r.HandleFunc("/api/request", h.AddUserRequest).Methods(http.MethodPost)
	r.HandleFunc("/api/request/{id}", h.DeclineUserRequest).Methods(http.MethodDelete)
	r.HandleFunc("/api/request/{id}", h.AcceptUserRequest).Methods(http.MethodPost)

	r.HandleFunc("/api/token", h.CreateToken).Methods(http.MethodPost)
	r.HandleFunc("/api/token", h.DeleteToken).Methods(http.MethodDelete)
}

func (h *FrontendHandler) GetAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IdentityFromContext(r.Context()))
}

func (h *FrontendHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.configSvc.GetConfiguration(r.Context()))
}

func (h *FrontendHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	showRemoved := false
	if raw, ok := mux.Vars(r)["showRemoved"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, domain.BadInputError("invalid showRemoved %q", raw))
			return
		}
		showRemoved = v
	}
	orgs, err := h.orgSvc.ListOrganizations(r.Context(), showRemoved)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *FrontendHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgSvc.GetOrganization(r.Context(), IdentityFromContext(r.Context()), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *FrontendHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var data domain.CreateOrganization
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.orgSvc.CreateOrganization(r.Context(), IdentityFromContext(r.Context()), &data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (h *FrontendHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var data domain.UpdateOrganization
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orgSvc.UpdateOrganization(r.Context(), IdentityFromContext(r.Context()), &data); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FrontendHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.orgSvc.ListRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h *FrontendHandler) GetUsersForOwnOrganizations(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.GetUsersForOwnOrganizations(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *FrontendHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.GetUsers(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *FrontendHandler) GetTestUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.GetTestUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *FrontendHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	removed, err := h.userSvc.RemoveUser(r.Context(), IdentityFromContext(r.Context()), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (h *FrontendHandler) GetAllUserRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestSvc.GetAllUserRequests(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *FrontendHandler) AddUserRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.UserRequestModel
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.requestSvc.AddUserRequest(r.Context(), IdentityFromContext(r.Context()), &req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FrontendHandler) DeclineUserRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.requestSvc.DeclineUserRequest(r.Context(), IdentityFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FrontendHandler) AcceptUserRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.requestSvc.AcceptUserRequest(r.Context(), IdentityFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *FrontendHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	logger.InfoContext(r.Context(), "Issuing API token", "userID", identity.ID)
	token, err := h.tokenSvc.CreateToken(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenModel{Token: token})
}

func (h *FrontendHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.tokenSvc.DeleteToken(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.BadInputError("invalid %s %q", name, raw)
	}
	return id, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.BadInputError("invalid %s %q", name, raw)
	}
	return v, nil
}
