package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/service"
)

// PublicHandler serves the /public-api routes for integrating services.
type PublicHandler struct {
	svc service.PublicAPIService
}

func NewPublicHandler(svc service.PublicAPIService) *PublicHandler {
	return &PublicHandler{svc: svc}
}

func (h *PublicHandler) Register(r *mux.Router) {
	r.HandleFunc("/public-api/user", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/public-api/user", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/public-api/users", h.ListUsers).Methods(http.MethodGet)
	r.HandleFunc("/public-api/modifiedUsers", h.ListModifiedUsers).Methods(http.MethodGet)
	r.HandleFunc("/public-api/organizations", h.ListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/public-api/validOrganizations", h.ListValidOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/public-api/modifiedOrganizations", h.ListModifiedOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/public-api/request", h.AddUserRequest).Methods(http.MethodPost)
	r.HandleFunc("/public-api/requests", h.ListUserRequests).Methods(http.MethodGet)
}

// GetUser looks the user up by the email or id query parameter.
func (h *PublicHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		user *domain.UserWithRolesInOrganizations
		err  error
	)
	switch {
	case q.Get("email") != "":
		user, err = h.svc.GetUserByEmail(r.Context(), q.Get("email"))
	case q.Get("id") != "":
		id, parseErr := uuid.Parse(q.Get("id"))
		if parseErr != nil {
			writeError(w, r, domain.BadInputError("invalid id %q", q.Get("id")))
			return
		}
		user, err = h.svc.GetUserByID(r.Context(), id)
	default:
		err = domain.BadInputError("email or id is required")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *PublicHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var nu domain.NewUser
	if err := decodeJSON(r, &nu); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.CreateUser(r.Context(), &nu)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *PublicHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *PublicHandler) ListModifiedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListModifiedUsers(r.Context(), r.Header.Get("If-Modified-Since"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *PublicHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	h.listOrganizations(w, r, false)
}

func (h *PublicHandler) ListValidOrganizations(w http.ResponseWriter, r *http.Request) {
	h.listOrganizations(w, r, true)
}

func (h *PublicHandler) listOrganizations(w http.ResponseWriter, r *http.Request, onlyValid bool) {
	orgs, err := h.svc.ListOrganizations(r.Context(), onlyValid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *PublicHandler) ListModifiedOrganizations(w http.ResponseWriter, r *http.Request) {
	onlyValid := false
	if raw := r.URL.Query().Get("onlyValid"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, domain.BadInputError("invalid onlyValid %q", raw))
			return
		}
		onlyValid = v
	}
	orgs, err := h.svc.ListModifiedOrganizations(r.Context(), r.Header.Get("If-Modified-Since"), onlyValid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *PublicHandler) AddUserRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.UserRequestModel
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.AddUserRequest(r.Context(), req.Email, req.OrganizationID, req.Role); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *PublicHandler) ListUserRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, r, domain.BadInputError("email is required"))
		return
	}
	requests, err := h.svc.ListUserRequests(r.Context(), email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
