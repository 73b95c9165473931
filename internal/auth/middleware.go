package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"fundraiser-display/internal/audit"
	"fundraiser-display/internal/server/response"
)

type Middleware struct {
	secret []byte
}

// New returns a middleware checking tokens signed with secret. An empty
// secret disables the check.
func New(secret []byte) Middleware {
	return Middleware{secret: secret}
}

// Enabled reports whether requests are actually checked.
func (m Middleware) Enabled() bool {
	return len(m.secret) > 0
}

func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Unauthorized(w, "missing token", "")
			return
		}

		subject, err := ParseToken(m.secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected bearer token")
			response.Unauthorized(w, "invalid token", "")
			return
		}
		if subject != AdminSubject {
			response.Unauthorized(w, "token subject is not allowed to write", "")
			return
		}

		ctx := audit.WithSubject(r.Context(), subject)
		next(w, r.WithContext(ctx))
	}
}
