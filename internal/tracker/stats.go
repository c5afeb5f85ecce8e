// ABOUTME: Dashboard statistics derived from the job list
// ABOUTME: Counts total, active and finished applications by status

package tracker

import (
	"strings"

	"github.com/markalston/jobdash/internal/client"
)

// Stats is recomputed from the raw job list on every successful load
type Stats struct {
	TotalJobs      int `json:"total_jobs"`
	ActiveProjects int `json:"active_projects"`
	TasksDone      int `json:"tasks_done"`
}

var (
	activeStatuses = map[string]bool{"applied": true, "interview": true}
	doneStatuses   = map[string]bool{"accepted": true, "completed": true, "done": true}
)

// ComputeStats counts jobs by case-insensitive status
func ComputeStats(jobs []client.Job) Stats {
	s := Stats{TotalJobs: len(jobs)}
	for _, j := range jobs {
		status := strings.ToLower(j.Status)
		if activeStatuses[status] {
			s.ActiveProjects++
		}
		if doneStatuses[status] {
			s.TasksDone++
		}
	}
	return s
}

// IsActive reports whether status counts toward active projects
func IsActive(status string) bool {
	return activeStatuses[strings.ToLower(status)]
}

// IsDone reports whether status counts toward finished tasks
func IsDone(status string) bool {
	return doneStatuses[strings.ToLower(status)]
}
