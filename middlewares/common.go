package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type contextString string

const adminContext contextString = "__adminContext"
const jwtSigningMethod = "HS256"

//corsOptions setting up routes for cors
func corsOptions() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "Access-Token", "Cache-Control", "Pragma", "X-Client-Version"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

//CommonMiddlewares middleware common for all routes
func CommonMiddlewares() chi.Middlewares {
	return chi.Chain(
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		},
		corsOptions().Handler,
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

				defer func() {
					err := recover()
					if err != nil {
						logrus.Errorf("Request Panic err: %v", err)
						jsonBody, _ := json.Marshal(map[string]string{
							"error": "There was an internal server error",
						})
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(http.StatusInternalServerError)
						_, err := w.Write(jsonBody)
						if err != nil {
							logrus.Errorf("Failed to send response from middleware with error: %+v", err)
						}
					}
				}()

				next.ServeHTTP(w, r)

			})
		},
	)
}

// AdminAuthMiddleware verifies the admin session token and loads the admin
// account into the request context.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtToken := r.Header.Get("Authorization")
		if jwtToken == "" {
			utils.RespondError(w, http.StatusBadRequest, errors.New("empty authorization token"), "Authorization token can't be empty!")
			return
		}

		claims := &models.JWTClaims{}
		token, err := jwt.ParseWithClaims(jwtToken, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected jwt signing method=%v", t.Header["alg"])
			}
			return []byte(os.Getenv("SECRET_KEY")), nil
		})
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, err, "Authentication failed!")
			return
		}
		if !token.Valid {
			utils.RespondError(w, http.StatusUnauthorized, errors.New("invalid token"), "Authentication failed!")
			return
		}

		admin, err := dbHelpers.GetAdminByEmail(claims.Email)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, err, "Authentication failed!")
			return
		}

		ctx := context.WithValue(r.Context(), adminContext, admin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminContext returns the authenticated admin, or nil outside admin routes.
func AdminContext(r *http.Request) *models.Admin {
	if admin, ok := r.Context().Value(adminContext).(*models.Admin); ok && admin != nil {
		return admin
	}
	return nil
}
