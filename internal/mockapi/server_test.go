// ABOUTME: Tests for the stub backend server
// ABOUTME: Exercises the route table through the real gateway client

package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/session"
)

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	opts.BcryptCost = bcrypt.MinCost
	if opts.Secret == nil {
		opts.Secret = []byte("test-secret")
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func login(t *testing.T, baseURL string) (*client.Client, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore("")
	c := client.New(baseURL, store)
	token, err := c.Login(context.Background(), client.Credentials{Email: DemoEmail, Password: DemoPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	store.SetToken(token)
	return c, store
}

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	s, _ := newTestServer(t, Options{})

	seen := make(map[string]bool)
	for i, route := range s.Routes() {
		if route.Method == "" || route.Path == "" || route.Handler == nil {
			t.Errorf("Route %d is incomplete: %+v", i, route)
		}
		key := route.Method + " " + route.Path
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestLogin_DemoAccount(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true})
	c, _ := login(t, ts.URL)

	user, err := c.FetchUser(context.Background())
	if err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if user.FirstName != "Demo" || user.Email != DemoEmail {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true})

	_, err := client.New(ts.URL, nil).Login(context.Background(), client.Credentials{Email: DemoEmail, Password: "nope"})
	if err == nil || err.Error() != "Invalid credentials" {
		t.Errorf("expected backend message, got %v", err)
	}
	if !client.IsUnauthorized(err) {
		t.Error("expected 401")
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	c := client.New(ts.URL, nil)
	ctx := context.Background()

	reg := client.Registration{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Password: "pw"}
	if err := c.Register(ctx, reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := c.Register(ctx, reg)
	if err == nil || err.Error() != "Email already registered" {
		t.Errorf("expected duplicate message, got %v", err)
	}

	if _, err := c.Login(ctx, client.Credentials{Email: "ADA@example.com", Password: "pw"}); err != nil {
		t.Errorf("expected case-insensitive email login, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	err := client.New(ts.URL, nil).Register(context.Background(), client.Registration{Email: "x@example.com"})
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Errorf("expected required-fields message, got %v", err)
	}
}

func TestAuthRequired(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true})

	_, err := client.New(ts.URL, session.NewMemoryStore("forged")).FetchJobs(context.Background())
	if err == nil || err.Error() != "Failed to fetch jobs" {
		t.Fatalf("expected fixed message, got %v", err)
	}
	if !client.IsUnauthorized(err) {
		t.Error("expected 401 for forged token")
	}
}

func TestJobsAndNotifications(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true})
	c, _ := login(t, ts.URL)
	ctx := context.Background()

	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		t.Fatalf("FetchJobs failed: %v", err)
	}
	seeded := len(jobs)
	if seeded == 0 {
		t.Fatal("expected seeded jobs")
	}

	job, err := c.CreateJob(ctx, client.JobInput{CompanyName: "Hooli", JobTitle: "SWE"})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if job.Status != client.DefaultJobStatus || job.ID == "" {
		t.Errorf("unexpected job %+v", job)
	}

	jobs, _ = c.FetchJobs(ctx)
	if len(jobs) != seeded+1 {
		t.Errorf("expected %d jobs, got %d", seeded+1, len(jobs))
	}

	if _, err := c.CreateJob(ctx, client.JobInput{CompanyName: "NoTitle"}); err == nil {
		t.Error("expected validation failure")
	}

	msg, err := c.SendNotification(ctx, "hello")
	if err != nil {
		t.Fatalf("SendNotification failed: %v", err)
	}

	msgs, _ := c.FetchNotifications(ctx)
	if msgs[0].ID != msg.ID {
		t.Error("expected newest message first")
	}

	if err := c.MarkRead(ctx, msg.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	msgs, _ = c.FetchNotifications(ctx)
	if !msgs[0].IsRead {
		t.Error("expected message marked read")
	}
	for _, m := range msgs[1:] {
		if m.IsRead {
			t.Errorf("expected other messages untouched, %s was read", m.ID)
		}
	}

	if err := c.MarkRead(ctx, "missing"); err == nil {
		t.Error("expected not found")
	}
}

func TestUpdateProfile(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true})
	c, _ := login(t, ts.URL)
	ctx := context.Background()

	if err := c.UpdateUser(ctx, client.ProfileUpdate{FirstName: "Dana", LastName: "Q", Password: "newpass"}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	u, _ := c.FetchUser(ctx)
	if u.FirstName != "Dana" || u.LastName != "Q" {
		t.Errorf("unexpected user after update %+v", u)
	}

	anon := client.New(ts.URL, nil)
	if _, err := anon.Login(ctx, client.Credentials{Email: DemoEmail, Password: "newpass"}); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}
	if _, err := anon.Login(ctx, client.Credentials{Email: DemoEmail, Password: DemoPassword}); err == nil {
		t.Error("expected old password to fail")
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s, ts := newTestServer(t, Options{SeedDemo: true})
	if _, err := s.Store().CreateUser(client.Registration{FirstName: "Other", Email: "o@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	store := session.NewMemoryStore("")
	c := client.New(ts.URL, store)
	token, err := c.Login(ctx, client.Credentials{Email: "o@example.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	store.SetToken(token)

	jobs, _ := c.FetchJobs(ctx)
	if len(jobs) != 0 {
		t.Errorf("expected no jobs for new user, got %d", len(jobs))
	}
}

func postLogin(t *testing.T, baseURL, forwardedFor string) *http.Response {
	t.Helper()
	body := strings.NewReader(`{"email":"demo@example.com","password":"wrong"}`)
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestLoginRateLimit(t *testing.T) {
	_, ts := newTestServer(t, Options{SeedDemo: true, LoginLimit: 2})

	for i := 0; i < 2; i++ {
		resp := postLogin(t, ts.URL, "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 before the limit, got %d", resp.StatusCode)
		}
	}

	resp := postLogin(t, ts.URL, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	var body struct {
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Message != "Too many requests, try again later" {
		t.Errorf("unexpected 429 body %+v", body)
	}

	// Same client through the gateway
	_, err := client.New(ts.URL, nil).Login(context.Background(), client.Credentials{Email: DemoEmail, Password: DemoPassword})
	if err == nil || err.Error() != body.Message {
		t.Errorf("expected rate limit message from the client, got %v", err)
	}

	other := postLogin(t, ts.URL, "198.51.100.4")
	other.Body.Close()
	if other.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected another client to keep its budget, got %d", other.StatusCode)
	}
}

func TestWriteRateLimitPerUser(t *testing.T) {
	s, ts := newTestServer(t, Options{SeedDemo: true, WriteLimit: 1})
	ctx := context.Background()
	c, _ := login(t, ts.URL)

	if _, err := c.SendNotification(ctx, "first"); err != nil {
		t.Fatalf("expected first write allowed, got %v", err)
	}
	if _, err := c.SendNotification(ctx, "second"); err == nil {
		t.Error("expected second write in the window to be rejected")
	}
	if _, err := c.FetchNotifications(ctx); err != nil {
		t.Errorf("expected reads unaffected, got %v", err)
	}

	if _, err := s.Store().CreateUser(client.Registration{FirstName: "Other", Email: "other@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	store := session.NewMemoryStore("")
	other := client.New(ts.URL, store)
	token, err := other.Login(ctx, client.Credentials{Email: "other@example.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	store.SetToken(token)
	if _, err := other.CreateJob(ctx, client.JobInput{CompanyName: "Hooli", JobTitle: "SRE"}); err != nil {
		t.Errorf("expected a second user to keep their budget, got %v", err)
	}
}

func TestHealthAndPreflight(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body %v", body)
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/jobs", nil)
	pre, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	pre.Body.Close()
	if pre.StatusCode != http.StatusOK {
		t.Errorf("expected 200 preflight, got %d", pre.StatusCode)
	}
	if pre.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header on preflight")
	}
}

func TestTokens(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tok := NewTokens([]byte("k"), time.Hour, clock)

	signed, err := tok.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}
	if id, ok := tok.Validate(signed); !ok || id != "u1" {
		t.Errorf("expected u1, got %q %v", id, ok)
	}

	if _, ok := NewTokens([]byte("other"), time.Hour, clock).Validate(signed); ok {
		t.Error("expected signature mismatch to fail")
	}

	now = now.Add(2 * time.Hour)
	if _, ok := tok.Validate(signed); ok {
		t.Error("expected expired token to fail")
	}
}
