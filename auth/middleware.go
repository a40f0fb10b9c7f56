package auth

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"nominaadmin/models"
)

// pathRule gates a path prefix. An empty roles list means any authenticated
// role may pass. Page rules redirect on failure, API rules answer JSON.
type pathRule struct {
	prefix string
	roles  []models.RoleKind
	page   bool
}

var pathRules = []pathRule{
	{prefix: "/admin", roles: []models.RoleKind{models.RoleSuper, models.RoleAdministrador}, page: true},
	{prefix: "/dashboard", page: true},
	{prefix: "/api/protected"},
}

// matchRule returns the longest matching prefix rule, or nil for public
// paths. Prefixes match whole path segments: /admin gates /admin and
// /admin/..., never /adminX.
func matchRule(path string) *pathRule {
	var best *pathRule
	for i := range pathRules {
		r := &pathRules[i]
		if path != r.prefix && !strings.HasPrefix(path, r.prefix+"/") {
			continue
		}
		if best == nil || len(r.prefix) > len(best.prefix) {
			best = r
		}
	}
	return best
}

func roleAllowed(rule *pathRule, kind models.RoleKind) bool {
	if len(rule.roles) == 0 {
		return true
	}
	for _, allowed := range rule.roles {
		if kind == allowed {
			return true
		}
	}
	return false
}

// Middleware wraps the whole mux and gates every request against the rule
// table. On failure it short-circuits the handler entirely.
func Middleware(codec *TokenCodec, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rule := matchRule(r.URL.Path)
			if rule == nil {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				deny(w, r, rule, http.StatusUnauthorized, "No autenticado")
				return
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				logger.WithField("path", r.URL.Path).Debug("session token rejected")
				deny(w, r, rule, http.StatusUnauthorized, "No autenticado")
				return
			}

			kind := models.RoleKindOf(claims.Rol)
			if !roleAllowed(rule, kind) {
				logger.WithFields(logrus.Fields{"path": r.URL.Path, "rol": claims.Rol}).Info("access denied")
				deny(w, r, rule, http.StatusForbidden, "No autorizado")
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{
				ID:     claims.Subject,
				Email:  claims.Email,
				Rol:    kind,
				RolRaw: claims.Rol,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, rule *pathRule, status int, message string) {
	if rule.page {
		http.Redirect(w, r, "/unauthorized", http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
