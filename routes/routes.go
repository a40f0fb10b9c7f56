package routes

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"nominaadmin/handlers"
)

// CORS middleware. The session cookie is the only credential, so the origin
// must be echoed back; browsers reject "*" on credentialed requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetupRoutes builds the mux. The auth gate wraps the returned handler in
// main, so protected prefixes here assume an already-verified identity in
// the request context.
func SetupRoutes(
	logger *logrus.Logger,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	employeeHandler *handlers.EmployeeHandler,
	catalogHandler *handlers.CatalogHandler,
) http.Handler {
	mux := http.NewServeMux()

	wrap := func(h http.HandlerFunc) http.Handler {
		return withCORS(http.HandlerFunc(handlers.RecoverWrapper(logger, h)))
	}

	// Session routes (public)
	mux.Handle("/auth/login", wrap(authHandler.Login))
	mux.Handle("/auth/logout", wrap(authHandler.Logout))
	mux.Handle("/unauthorized", wrap(handlers.Unauthorized))

	// Current session (behind the gate)
	mux.Handle("/api/protected/auth/me", wrap(authHandler.Me))

	// User routes
	mux.Handle("/api/protected/usuarios", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userHandler.List(w, r)
		case http.MethodPost:
			userHandler.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	mux.Handle("/api/protected/usuarios/", wrap(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/protected/usuarios/")
		switch rest {
		case "count":
			userHandler.Count(w, r)
			return
		case "sesiones":
			userHandler.ActiveSessions(w, r)
			return
		}
		if rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			userHandler.GetByID(w, r, rest)
		case http.MethodPut:
			userHandler.Update(w, r, rest)
		case http.MethodDelete:
			userHandler.Delete(w, r, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Role routes
	mux.Handle("/api/protected/roles", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			roleHandler.List(w, r)
		case http.MethodPost:
			roleHandler.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	mux.Handle("/api/protected/roles/", wrap(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/protected/roles/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			roleHandler.GetByID(w, r, id)
		case http.MethodPut:
			roleHandler.Update(w, r, id)
		case http.MethodDelete:
			roleHandler.Delete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Employee routes
	mux.Handle("/api/protected/empleados", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			employeeHandler.List(w, r)
		case http.MethodPost:
			employeeHandler.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	mux.Handle("/api/protected/empleados/", wrap(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/protected/empleados/")
		if rest == "count" {
			employeeHandler.Count(w, r)
			return
		}
		if rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			employeeHandler.GetByID(w, r, rest)
		case http.MethodPut:
			employeeHandler.Update(w, r, rest)
		case http.MethodDelete:
			employeeHandler.Delete(w, r, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Catalog routes
	mux.Handle("/api/protected/catalogos/", wrap(func(w http.ResponseWriter, r *http.Request) {
		tipo := strings.TrimPrefix(r.URL.Path, "/api/protected/catalogos/")
		if tipo == "" || strings.Contains(tipo, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		catalogHandler.Serve(w, r, tipo)
	}))

	return mux
}
