// ABOUTME: Test doubles and command runners for page and shell tests
// ABOUTME: A scriptable gateway, a ready Env, and a collector that flattens batched commands

package pagetest

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/session"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// Gateway is a page.Gateway whose calls are scripted by function fields.
// Unset fields succeed with empty results. Every call is recorded.
type Gateway struct {
	LoginFn              func(client.Credentials) (string, error)
	RegisterFn           func(client.Registration) error
	FetchUserFn          func() (*client.User, error)
	UpdateUserFn         func(client.ProfileUpdate) error
	FetchJobsFn          func() ([]client.Job, error)
	CreateJobFn          func(client.JobInput) (*client.Job, error)
	FetchNotificationsFn func() ([]client.Message, error)
	SendNotificationFn   func(string) (*client.Message, error)
	MarkReadFn           func(string) error

	mu    sync.Mutex
	calls []string
}

var _ page.Gateway = (*Gateway)(nil)

func (g *Gateway) record(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, name)
}

// Calls returns the recorded call names in order
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Count returns how many times name was called
func (g *Gateway) Count(name string) int {
	n := 0
	for _, c := range g.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (g *Gateway) Login(ctx context.Context, creds client.Credentials) (string, error) {
	g.record("Login")
	if g.LoginFn != nil {
		return g.LoginFn(creds)
	}
	return "token", nil
}

func (g *Gateway) Register(ctx context.Context, reg client.Registration) error {
	g.record("Register")
	if g.RegisterFn != nil {
		return g.RegisterFn(reg)
	}
	return nil
}

func (g *Gateway) FetchUser(ctx context.Context) (*client.User, error) {
	g.record("FetchUser")
	if g.FetchUserFn != nil {
		return g.FetchUserFn()
	}
	return &client.User{}, nil
}

func (g *Gateway) UpdateUser(ctx context.Context, update client.ProfileUpdate) error {
	g.record("UpdateUser")
	if g.UpdateUserFn != nil {
		return g.UpdateUserFn(update)
	}
	return nil
}

func (g *Gateway) FetchJobs(ctx context.Context) ([]client.Job, error) {
	g.record("FetchJobs")
	if g.FetchJobsFn != nil {
		return g.FetchJobsFn()
	}
	return []client.Job{}, nil
}

func (g *Gateway) CreateJob(ctx context.Context, input client.JobInput) (*client.Job, error) {
	g.record("CreateJob")
	if g.CreateJobFn != nil {
		return g.CreateJobFn(input)
	}
	return &client.Job{}, nil
}

func (g *Gateway) FetchNotifications(ctx context.Context) ([]client.Message, error) {
	g.record("FetchNotifications")
	if g.FetchNotificationsFn != nil {
		return g.FetchNotificationsFn()
	}
	return []client.Message{}, nil
}

func (g *Gateway) SendNotification(ctx context.Context, text string) (*client.Message, error) {
	g.record("SendNotification")
	if g.SendNotificationFn != nil {
		return g.SendNotificationFn(text)
	}
	return &client.Message{Message: text}, nil
}

func (g *Gateway) MarkRead(ctx context.Context, id string) error {
	g.record("MarkRead")
	if g.MarkReadFn != nil {
		return g.MarkReadFn(id)
	}
	return nil
}

// Now is the fixed clock used by NewEnv
var Now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

// NewEnv returns an Env with an in-memory session and a fixed clock
func NewEnv(gw page.Gateway) page.Env {
	return page.Env{
		Client:  gw,
		Session: session.NewMemoryStore(""),
		Theme:   styles.NewTheme(true),
		Recent:  recentlogins.New(""),
		Now:     func() time.Time { return Now },
		Ctx:     context.Background(),
		Gen:     1,
		Width:   100,
		Height:  30,
	}
}

// Wait bounds how long Collect waits for each command
var Wait = 250 * time.Millisecond

// Collect runs cmd and every command nested in batches, returning the
// messages that arrive within Wait. Slow commands such as cursor blinks
// and spinner ticks are abandoned. Loaded wrappers are kept as is.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-out:
	case <-time.After(Wait):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		msgs []tea.Msg
	)
	for _, c := range batch {
		wg.Add(1)
		go func(c tea.Cmd) {
			defer wg.Done()
			got := Collect(c)
			mu.Lock()
			msgs = append(msgs, got...)
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return msgs
}

// Find returns the first message of type T, unwrapping Loaded
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if loaded, ok := msg.(page.Loaded); ok {
			msg = loaded.Msg
		}
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Loaded returns every Loaded message in msgs
func Loaded(msgs []tea.Msg) []page.Loaded {
	var out []page.Loaded
	for _, msg := range msgs {
		if l, ok := msg.(page.Loaded); ok {
			out = append(out, l)
		}
	}
	return out
}
