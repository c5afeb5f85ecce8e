// ABOUTME: In-memory data store for the stub job tracker backend
// ABOUTME: Holds users, jobs and notifications keyed by user id behind one mutex

package mockapi

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/markalston/jobdash/internal/client"
)

// Demo account seeded by SeedDemo
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingFields      = errors.New("required fields missing")
	ErrNotFound           = errors.New("not found")
)

type account struct {
	user         client.User
	passwordHash []byte
}

// Store is safe for concurrent use
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*account // by user id
	byEmail  map[string]string   // lowercased email -> user id
	jobs     map[string][]client.Job
	messages map[string][]client.Message // newest first
	now      func() time.Time
	cost     int
}

// NewStore creates an empty store. cost is the bcrypt cost; 0 means
// bcrypt.DefaultCost.
func NewStore(now func() time.Time, cost int) *Store {
	if now == nil {
		now = time.Now
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		jobs:     make(map[string][]client.Job),
		messages: make(map[string][]client.Message),
		now:      now,
		cost:     cost,
	}
}

// SeedDemo adds the demo account with a few jobs and notifications
func (s *Store) SeedDemo() (client.User, error) {
	u, err := s.CreateUser(client.Registration{
		FirstName: "Demo",
		LastName:  "User",
		Email:     DemoEmail,
		Password:  DemoPassword,
	})
	if err != nil {
		return client.User{}, fmt.Errorf("seed demo user: %w", err)
	}

	for _, in := range []client.JobInput{
		{CompanyName: "Acme Corp", JobTitle: "Backend Engineer", Status: "Applied"},
		{CompanyName: "Globex", JobTitle: "Platform Engineer", Status: "Interview", Notes: "Panel on Thursday"},
		{CompanyName: "Initech", JobTitle: "SRE", Status: "Accepted"},
		{CompanyName: "Umbrella", JobTitle: "Data Engineer", Status: "Rejected"},
	} {
		if _, err := s.AddJob(u.ID, in); err != nil {
			return client.User{}, fmt.Errorf("seed demo jobs: %w", err)
		}
	}

	for _, text := range []string{
		"Welcome to your job tracker!",
		"Globex scheduled an interview",
	} {
		if _, err := s.AddMessage(u.ID, text); err != nil {
			return client.User{}, fmt.Errorf("seed demo messages: %w", err)
		}
	}
	return u, nil
}

// CreateUser registers a new account
func (s *Store) CreateUser(reg client.Registration) (client.User, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || reg.Password == "" || strings.TrimSpace(reg.FirstName) == "" {
		return client.User{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return client.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return client.User{}, ErrEmailTaken
	}

	u := client.User{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
		Email:     email,
		Role:      "user",
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: hash}
	s.byEmail[email] = u.ID
	return u, nil
}

// Authenticate checks an email/password pair
func (s *Store) Authenticate(email, password string) (client.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	var acct *account
	if ok {
		acct = s.accounts[id]
	}
	s.mu.RUnlock()

	if acct == nil {
		return client.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return client.User{}, ErrInvalidCredentials
	}
	return acct.user, nil
}

// User returns the account for id
func (s *Store) User(id string) (client.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok {
		return client.User{}, ErrNotFound
	}
	return acct.user, nil
}

// UpdateUser replaces the name fields, and the password when non-empty
func (s *Store) UpdateUser(id string, update client.ProfileUpdate) (client.User, error) {
	var hash []byte
	if update.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(update.Password), s.cost)
		if err != nil {
			return client.User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		return client.User{}, ErrNotFound
	}
	acct.user.FirstName = strings.TrimSpace(update.FirstName)
	acct.user.LastName = strings.TrimSpace(update.LastName)
	if hash != nil {
		acct.passwordHash = hash
	}
	return acct.user, nil
}

// Jobs returns the user's jobs in creation order
func (s *Store) Jobs(userID string) []client.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.Job{}, s.jobs[userID]...)
}

// AddJob creates a job. Company and job title are required.
func (s *Store) AddJob(userID string, in client.JobInput) (client.Job, error) {
	company := strings.TrimSpace(in.CompanyName)
	title := strings.TrimSpace(in.JobTitle)
	if company == "" || title == "" {
		return client.Job{}, ErrMissingFields
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = client.DefaultJobStatus
	}

	job := client.Job{
		ID:          uuid.NewString(),
		Title:       title + " at " + company,
		Status:      status,
		CompanyName: company,
		JobTitle:    title,
		Notes:       strings.TrimSpace(in.Notes),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[userID] = append(s.jobs[userID], job)
	return job, nil
}

// Messages returns the user's notifications, newest first
func (s *Store) Messages(userID string) []client.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.Message{}, s.messages[userID]...)
}

// AddMessage stores a notification for the user
func (s *Store) AddMessage(userID, text string) (client.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return client.Message{}, ErrMissingFields
	}

	msg := client.Message{
		ID:        uuid.NewString(),
		Message:   text,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[userID] = slices.Insert(s.messages[userID], 0, msg)
	return msg, nil
}

// MarkRead flags one of the user's notifications as read
func (s *Store) MarkRead(userID, messageID string) (client.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[userID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			msgs[i].IsRead = true
			return msgs[i], nil
		}
	}
	return client.Message{}, ErrNotFound
}
