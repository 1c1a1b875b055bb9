package middleware

import (
	"net/http"
	"strings"
)

// overrideField is the form/query field HTML forms use to tunnel DELETE
const overrideField = "_method"

// MethodOverride lets HTML forms issue DELETE (and friends) by POSTing with a
// _method field, since browsers only speak GET and POST in forms. The logout
// form posts to /session with _method=DELETE.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get(overrideField)
			if method == "" {
				method = r.PostFormValue(overrideField)
			}

			switch strings.ToUpper(method) {
			case http.MethodDelete, http.MethodPut, http.MethodPatch:
				r.Method = strings.ToUpper(method)
			}
		}
		next.ServeHTTP(w, r)
	})
}
