package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/fanout.git/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

// UserIDKey используется как ключ для хранения ID пользователя в контексте
const UserIDKey contextKey = "user_id"

const (
	cookieName = "user_id"
	tokenTTL   = 24 * time.Hour
)

// UserIDFromContext извлекает ID пользователя из контекста запроса.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// AuthMiddleware создает middleware аутентификации пользователя.
// При отсутствии или невалидности куки пользователю выдается новый
// подписанный JWT токен с уникальным ID.
func AuthMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err == nil {
				// Проверяем токен из куки
				claims := &models.UserClaims{}
				token, parseErr := jwt.ParseWithClaims(cookie.Value, claims,
					func(t *jwt.Token) (interface{}, error) {
						if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
							return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
						}
						return []byte(secretKey), nil
					})

				if parseErr == nil && token.Valid {
					ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Куки нет или токен невалиден, выдаем новую
			userID := uuid.New().String()
			token, err := createToken(userID, secretKey)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(tokenTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// createToken создает JWT токен для пользователя
func createToken(userID, secretKey string) (string, error) {
	claims := &models.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
