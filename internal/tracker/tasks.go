// ABOUTME: Local task list backing the dashboard progress panel
// ABOUTME: Completion toggles are local state only and never reach the backend

package tracker

import "github.com/markalston/jobdash/internal/client"

// TaskList holds the jobs shown as tasks on the dashboard
type TaskList struct {
	jobs []client.Job
}

// NewTaskList copies jobs into a new list
func NewTaskList(jobs []client.Job) *TaskList {
	t := &TaskList{}
	t.Replace(jobs)
	return t
}

// Replace swaps in a freshly fetched list, discarding local toggles
func (t *TaskList) Replace(jobs []client.Job) {
	t.jobs = append([]client.Job(nil), jobs...)
}

// Jobs returns a copy of the current list
func (t *TaskList) Jobs() []client.Job {
	return append([]client.Job(nil), t.jobs...)
}

// Len returns the number of tasks
func (t *TaskList) Len() int {
	return len(t.jobs)
}

// At returns the task at index i
func (t *TaskList) At(i int) (client.Job, bool) {
	if i < 0 || i >= len(t.jobs) {
		return client.Job{}, false
	}
	return t.jobs[i], true
}

// Toggle flips Completed on the job with the given id. It reports whether
// a job matched. An empty id never matches.
func (t *TaskList) Toggle(id string) bool {
	if id == "" {
		return false
	}
	for i := range t.jobs {
		if t.jobs[i].ID == id {
			t.jobs[i].Completed = !t.jobs[i].Completed
			return true
		}
	}
	return false
}

// Completed returns how many tasks are marked complete
func (t *TaskList) Completed() int {
	n := 0
	for _, j := range t.jobs {
		if j.Completed {
			n++
		}
	}
	return n
}

// Progress returns completed/total as a percentage, 0 for an empty list
func (t *TaskList) Progress() float64 {
	return Progress(t.Completed(), len(t.jobs))
}

// Progress returns completed/total*100, defined as 0 when total is 0
func Progress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
