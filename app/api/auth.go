package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

type ctxKey string

const ctxSubjectKey ctxKey = "subject"

// authService checks service tokens signed with shared secret
type authService struct {
	secret []byte
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("unauthorized"))
}

// ServiceCtx checks authorization token and adds its subject to context
func (s *authService) ServiceCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		requestToken := r.Header.Get("Authorization")
		if !strings.HasPrefix(requestToken, "Bearer ") {
			requestToken = ""
		}
		requestToken = strings.Replace(requestToken, "Bearer ", "", 1)
		if requestToken == "" {
			unauthorized(w)
			return
		}
		token, err := jwt.ParseWithClaims(requestToken, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil {
			unauthorized(w)
			return
		}

		claims := token.Claims.(*jwt.StandardClaims)
		if claims.Subject == "" {
			unauthorized(w)
			return
		}
		now := time.Now().Unix()
		if claims.NotBefore > now || claims.ExpiresAt < now {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSubjectKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
