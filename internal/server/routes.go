package server

import (
	"net/http"

	"github.com/examia/examia-backend/internal/server/handlers"
	"github.com/examia/examia-backend/internal/server/middleware"
)

// route binds a method+path pattern to its handler and access policy
type route struct {
	pattern string
	policy  middleware.Policy
	handler http.HandlerFunc
	limited bool
}

// routeTable is the single authority on who may call what. Earlier
// product iterations allowed unauthenticated reads; flipping a policy
// here is the supported way to change that.
func routeTable(auth *handlers.AuthHandler, pyq *handlers.PYQHandler, health *handlers.HealthHandler) []route {
	return []route{
		{"POST /api/auth/signup", middleware.PolicyPublic, auth.Signup, true},
		{"POST /api/auth/login", middleware.PolicyPublic, auth.Login, true},

		{"GET /api/pyqs", middleware.PolicyUser, pyq.List, false},
		{"GET /api/pyqs/chapters", middleware.PolicyUser, pyq.Chapters, false},

		{"POST /api/admin/pyqs", middleware.PolicyAdmin, pyq.Create, false},
		{"DELETE /api/admin/pyqs/{id}", middleware.PolicyAdmin, pyq.Delete, false},

		{"GET /api/health", middleware.PolicyPublic, health.Health, false},
	}
}
