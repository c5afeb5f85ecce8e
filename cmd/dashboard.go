// ABOUTME: Dashboard command for the jobdash CLI
// ABOUTME: Prints the same stats the interactive dashboard shows

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/datasync"
	"github.com/markalston/jobdash/internal/tracker"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show job stats and unread messages",
	Long: `Load jobs, notifications and the current user together and print a
summary. Any failed call fails the whole command.`,
	Args: cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runDashboard(ctx, w)
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardSummary is the JSON output shape
type dashboardSummary struct {
	User      string        `json:"user"`
	Stats     tracker.Stats `json:"stats"`
	Unread    int           `json:"unread"`
	Progress  float64       `json:"progress_percent"`
	TaskCount int           `json:"task_count"`
}

// runDashboard loads the dashboard snapshot and returns exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	snap, err := datasync.LoadDashboard(ctx, c)
	if err != nil {
		return backendError(w, err)
	}

	tasks := tracker.NewTaskList(snap.Jobs)
	summary := dashboardSummary{
		User:      snap.User.DisplayName(),
		Stats:     snap.Stats,
		Unread:    snap.Unread(),
		Progress:  tasks.Progress(),
		TaskCount: tasks.Len(),
	}

	if IsJSONOutput() {
		printJSON(w, summary)
		return exitOK
	}
	fmt.Fprintln(w, formatDashboardHuman(summary, snap))
	return exitOK
}

// formatDashboardHuman formats the summary for human readability
func formatDashboardHuman(s dashboardSummary, snap datasync.Snapshot) string {
	var sb strings.Builder
	if s.User != "" {
		fmt.Fprintf(&sb, "Welcome back, %s!\n\n", s.User)
	} else {
		sb.WriteString("Welcome!\n\n")
	}
	fmt.Fprintf(&sb, `Total Jobs:      %d
Active Projects: %d
Tasks Done:      %d
Unread Messages: %d`, s.Stats.TotalJobs, s.Stats.ActiveProjects, s.Stats.TasksDone, s.Unread)

	if len(snap.Jobs) > 0 {
		sb.WriteString("\n")
		for _, job := range snap.Jobs {
			fmt.Fprintf(&sb, "\n  %-11s %s", "["+job.Status+"]", job.DisplayTitle())
		}
	}
	return sb.String()
}
