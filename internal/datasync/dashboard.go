// ABOUTME: Join-all loader for the dashboard's three independent reads
// ABOUTME: Any single failure discards every result; there is no partial snapshot

package datasync

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tracker"
)

// DashboardSource is the slice of the gateway the dashboard reads from
type DashboardSource interface {
	FetchJobs(ctx context.Context) ([]client.Job, error)
	FetchNotifications(ctx context.Context) ([]client.Message, error)
	FetchUser(ctx context.Context) (*client.User, error)
}

// Snapshot is everything the dashboard shows after a successful load
type Snapshot struct {
	Jobs     []client.Job     `json:"jobs"`
	Messages []client.Message `json:"messages"`
	User     *client.User     `json:"user"`
	Stats    tracker.Stats    `json:"stats"`
}

// Unread counts unread messages in the snapshot
func (s Snapshot) Unread() int {
	n := 0
	for _, m := range s.Messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// LoadDashboard issues the three reads concurrently. The first failure
// cancels the others and is returned with an empty Snapshot.
func LoadDashboard(ctx context.Context, src DashboardSource) (Snapshot, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		jobs     []client.Job
		messages []client.Message
		user     *client.User
	)

	g.Go(func() error {
		var err error
		jobs, err = src.FetchJobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = src.FetchNotifications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = src.FetchUser(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Jobs:     jobs,
		Messages: messages,
		User:     user,
		Stats:    tracker.ComputeStats(jobs),
	}, nil
}
