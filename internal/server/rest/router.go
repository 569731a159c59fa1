package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler returns the full middleware chain around the router. CORS and
// request ids wrap the router itself so preflights and unmatched paths get
// them too.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public routes
	r.HandleFunc("/auth/signup", s.signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(s.authenticate)
	authRouter.HandleFunc("/internships", s.listInternships).Methods(http.MethodGet)
	authRouter.HandleFunc("/internships", s.createInternship).Methods(http.MethodPost)
	authRouter.HandleFunc("/internships/{id}", s.getInternship).Methods(http.MethodGet)
	authRouter.HandleFunc("/internships/{id}", s.updateInternship).Methods(http.MethodPut)
	authRouter.HandleFunc("/internships/{id}", s.deleteInternship).Methods(http.MethodDelete)

	var h http.Handler = r
	h = bodyLimit(s.opts.MaxBodyBytes)(h)
	h = cors(s.opts.AllowedOrigins)(h)
	h = s.accessLog(h)
	h = requestID(h)
	return h
}
