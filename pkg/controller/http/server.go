package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riskledger/riskledger/pkg/usecase"
	"github.com/riskledger/riskledger/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authUC == nil {
		s.authUC = uc.Auth
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	if s.authUC != nil {
		r.Route("/api/auth", func(r chi.Router) {
			r.Get("/login", authLoginHandler(s.authUC))
			r.Get("/callback", authCallbackHandler(s.authUC))
			r.Post("/logout", authLogoutHandler(s.authUC))
			r.Get("/me", authMeHandler(s.authUC))
		})
	}

	// Resource endpoints: every request carries a validated session and a
	// permission snapshot (possibly nil, which denies everything)
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))
		r.Use(permissionsMiddleware(uc.Permission))

		r.Get("/permissions/me", permissionsMeHandler())

		r.Route("/risks", func(r chi.Router) {
			r.Get("/", listRisksHandler(uc.Risk))
			r.Post("/", createRiskHandler(uc.Risk))
			r.Get("/{riskID}", getRiskHandler(uc.Risk))
			r.Put("/{riskID}", updateRiskHandler(uc.Risk))
			r.Delete("/{riskID}", deleteRiskHandler(uc.Risk))

			r.Get("/{riskID}/controls", listControlsHandler(uc.Control))
			r.Post("/{riskID}/controls", createControlHandler(uc.Control))
		})

		r.Route("/controls", func(r chi.Router) {
			r.Get("/{controlID}", getControlHandler(uc.Control))
			r.Put("/{controlID}", updateControlHandler(uc.Control))
			r.Delete("/{controlID}", deleteControlHandler(uc.Control))
			r.Post("/{controlID}/evidence", attachEvidenceHandler(uc.Control))
			r.Get("/{controlID}/evidence", evidenceURLHandler(uc.Control))
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", listDepartmentsHandler(uc.Department))
			r.Post("/", createDepartmentHandler(uc.Department))
			r.Get("/{departmentID}", getDepartmentHandler(uc.Department))
			r.Put("/{departmentID}", renameDepartmentHandler(uc.Department))
			r.Delete("/{departmentID}", deleteDepartmentHandler(uc.Department))
			r.Post("/{departmentID}/members", assignMemberHandler(uc.Department))
			r.Delete("/{departmentID}/members/{userID}", unassignMemberHandler(uc.Department))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", listUsersHandler(uc.User))
			r.Get("/{userID}", getUserHandler(uc.User))
			r.Put("/{userID}/role", setRoleHandler(uc.User))
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
