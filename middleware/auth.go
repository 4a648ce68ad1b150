package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Charlydk/Portal-GTR-sub000/database"
	"github.com/Charlydk/Portal-GTR-sub000/models"
)

type contextKey string

const AnalystContextKey contextKey = "analyst"

type Claims struct {
	AnalystID uint        `json:"analyst_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateToken(analyst *models.Analyst, expiration time.Duration) (string, error) {
	claims := &Claims{
		AnalystID: analyst.ID,
		Email:     analyst.Email,
		Role:      analyst.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenString string
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			http.Error(w, `{"detail":"No autenticado"}`, http.StatusUnauthorized)
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			http.Error(w, `{"detail":"No se pudieron validar las credenciales"}`, http.StatusUnauthorized)
			return
		}

		var analyst models.Analyst
		if err := database.GetDB().First(&analyst, claims.AnalystID).Error; err != nil {
			http.Error(w, `{"detail":"No se pudieron validar las credenciales"}`, http.StatusUnauthorized)
			return
		}
		if !analyst.Active {
			http.Error(w, `{"detail":"Usuario inactivo"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), AnalystContextKey, &analyst)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			analyst := GetAnalystFromContext(r.Context())
			if analyst == nil {
				http.Error(w, `{"detail":"No autenticado"}`, http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if analyst.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, `{"detail":"No tienes permiso para realizar esta acción"}`, http.StatusForbidden)
		})
	}
}

func GetAnalystFromContext(ctx context.Context) *models.Analyst {
	analyst, ok := ctx.Value(AnalystContextKey).(*models.Analyst)
	if !ok {
		return nil
	}
	return analyst
}
