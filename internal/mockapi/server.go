// ABOUTME: HTTP server for the stub job tracker backend
// ABOUTME: Route table, middleware wiring and the { data } / { message } response shapes

package mockapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/middleware"
)

// Options configures a Server
type Options struct {
	Secret      []byte        // token signing key; random when empty
	TokenTTL    time.Duration // 0 issues tokens without expiry
	Now         func() time.Time
	BcryptCost  int      // 0 means bcrypt.DefaultCost
	CORSOrigins []string // empty allows any origin
	LoginLimit  int      // auth requests per minute per client; 0 disables
	WriteLimit  int      // job and message creates per minute per user; 0 disables
	SeedDemo    bool
}

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
	Auth    bool // requires a bearer token
	Limited bool // subject to the login rate limit
	Write   bool // subject to the per-user write limit
}

// Server implements the REST contract the dashboard client consumes
type Server struct {
	store   *Store
	tokens  *Tokens
	limiter *middleware.RateLimiter
	writes  *middleware.RateLimiter
	cors    []string
}

// New creates a server with an empty (or demo-seeded) store
func New(opts Options) (*Server, error) {
	secret := opts.Secret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)
	}

	s := &Server{
		store:  NewStore(opts.Now, opts.BcryptCost),
		tokens: NewTokens(secret, opts.TokenTTL, opts.Now),
		cors:   opts.CORSOrigins,
	}
	if opts.LoginLimit > 0 {
		s.limiter = middleware.NewRateLimiter(opts.LoginLimit, time.Minute)
	}
	if opts.WriteLimit > 0 {
		s.writes = middleware.NewRateLimiter(opts.WriteLimit, time.Minute)
	}

	if opts.SeedDemo {
		u, err := s.store.SeedDemo()
		if err != nil {
			return nil, err
		}
		slog.Info("Seeded demo account", "email", u.Email)
	}
	return s, nil
}

// Store exposes the backing store for tests and seeding
func (s *Server) Store() *Store {
	return s.store
}

// Routes returns all API routes for registration.
func (s *Server) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/health", Handler: s.Health},

		// Auth
		{Method: http.MethodPost, Path: "/auth/login", Handler: s.Login, Limited: true},
		{Method: http.MethodPost, Path: "/auth/register", Handler: s.Register, Limited: true},
		{Method: http.MethodGet, Path: "/auth/me", Handler: s.GetMe, Auth: true},
		{Method: http.MethodPut, Path: "/auth/me", Handler: s.UpdateMe, Auth: true},

		// Jobs
		{Method: http.MethodGet, Path: "/jobs", Handler: s.ListJobs, Auth: true},
		{Method: http.MethodPost, Path: "/jobs", Handler: s.CreateJob, Auth: true, Write: true},

		// Notifications
		{Method: http.MethodGet, Path: "/notifications", Handler: s.ListNotifications, Auth: true},
		{Method: http.MethodPost, Path: "/notifications", Handler: s.CreateNotification, Auth: true, Write: true},
		{Method: http.MethodPut, Path: "/notifications/{id}/mark-read", Handler: s.MarkRead, Auth: true},
	}
}

// Handler builds the mux with logging, CORS, auth and rate limiting applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	cors := middleware.CORS(s.cors)

	for _, route := range s.Routes() {
		chain := []middleware.Middleware{middleware.LogRequest, cors}
		if route.Limited {
			chain = append(chain, middleware.RateLimit(s.limiter, middleware.ClientIP))
		}
		if route.Auth {
			chain = append(chain, middleware.Auth(s.tokens.Validate))
		}
		if route.Write {
			chain = append(chain, middleware.RateLimit(s.writes, middleware.UserOrIP))
		}
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, chain...))
	}

	// Preflight for any path
	mux.HandleFunc("OPTIONS /", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {}, cors))

	return mux
}

// Health reports liveness
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login exchanges credentials for a token
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var creds client.Credentials
	if !decode(w, r, &creds) {
		return
	}

	u, err := s.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		slog.Debug("Login rejected", "email", creds.Email)
		middleware.WriteJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		slog.Error("Token issue failed", "error", err)
		middleware.WriteJSONError(w, "Login unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Register creates an account
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var reg client.Registration
	if !decode(w, r, &reg) {
		return
	}

	u, err := s.store.CreateUser(reg)
	switch {
	case errors.Is(err, ErrMissingFields):
		middleware.WriteJSONError(w, "First name, email and password are required", http.StatusBadRequest)
	case errors.Is(err, ErrEmailTaken):
		middleware.WriteJSONError(w, "Email already registered", http.StatusConflict)
	case err != nil:
		s.internalError(w, err)
	default:
		writeData(w, http.StatusCreated, u)
	}
}

// GetMe returns the signed-in user
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(middleware.UserID(r))
	if err != nil {
		middleware.WriteJSONError(w, "User not found", http.StatusNotFound)
		return
	}
	writeData(w, http.StatusOK, u)
}

// UpdateMe replaces the signed-in user's profile
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var update client.ProfileUpdate
	if !decode(w, r, &update) {
		return
	}

	u, err := s.store.UpdateUser(middleware.UserID(r), update)
	switch {
	case errors.Is(err, ErrNotFound):
		middleware.WriteJSONError(w, "User not found", http.StatusNotFound)
	case err != nil:
		s.internalError(w, err)
	default:
		writeData(w, http.StatusOK, u)
	}
}

// ListJobs returns the user's jobs
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Jobs(middleware.UserID(r)))
}

// CreateJob adds a job
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in client.JobInput
	if !decode(w, r, &in) {
		return
	}

	job, err := s.store.AddJob(middleware.UserID(r), in)
	if errors.Is(err, ErrMissingFields) {
		middleware.WriteJSONError(w, "Company name and job title are required", http.StatusBadRequest)
		return
	}
	writeData(w, http.StatusCreated, job)
}

// ListNotifications returns the user's messages, newest first
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Messages(middleware.UserID(r)))
}

// CreateNotification stores a message
func (s *Server) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if !decode(w, r, &body) {
		return
	}

	msg, err := s.store.AddMessage(middleware.UserID(r), body.Message)
	if errors.Is(err, ErrMissingFields) {
		middleware.WriteJSONError(w, "Message is required", http.StatusBadRequest)
		return
	}
	writeData(w, http.StatusCreated, msg)
}

// MarkRead flags one message as read
func (s *Server) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := s.store.MarkRead(middleware.UserID(r), r.PathValue("id"))
	if err != nil {
		middleware.WriteJSONError(w, "Message not found", http.StatusNotFound)
		return
	}
	writeData(w, http.StatusOK, msg)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	slog.Error("Request failed", "error", err)
	middleware.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, map[string]any{"data": data})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
