package http

import (
	"github.com/gorilla/mux"
)

// NewRouter wires every handler behind request logging and authentication.
func NewRouter(auth *AuthMiddleware, frontend *FrontendHandler, public *PublicHandler, ops *OpsHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)
	r.Use(auth.Middleware)

	frontend.Register(r)
	public.Register(r)
	ops.Register(r)
	return r
}
