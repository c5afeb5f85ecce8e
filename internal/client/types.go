// ABOUTME: Request and response shapes for the job tracker API
// ABOUTME: Users, jobs, notification messages and form payloads

package client

import (
	"encoding/json"
	"strings"
	"time"
)

// Credentials is the POST /auth/login body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the POST /auth/register body
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// User is the current account as returned by GET /auth/me
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// DisplayName returns the user's first name, or a fallback
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

// Initials returns up to two uppercase initials
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		if part != "" {
			sb.WriteString(strings.ToUpper(string([]rune(part)[0])))
		}
	}
	return sb.String()
}

// ProfileUpdate is the PUT /auth/me body. An empty password leaves it unchanged.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Job is a tracked application shown as a task on the dashboard
type Job struct {
	ID          string `json:"_id"`
	Title       string `json:"title,omitempty"`
	Status      string `json:"status"`
	Completed   bool   `json:"completed"`
	CompanyName string `json:"companyName,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UnmarshalJSON accepts either "_id" or "id" for the identifier
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*j = Job(aux.plain)
	if j.ID == "" {
		j.ID = aux.AltID
	}
	return nil
}

// DisplayTitle returns the title, or "JobTitle at CompanyName" when unset
func (j Job) DisplayTitle() string {
	if j.Title != "" {
		return j.Title
	}
	switch {
	case j.JobTitle != "" && j.CompanyName != "":
		return j.JobTitle + " at " + j.CompanyName
	case j.JobTitle != "":
		return j.JobTitle
	default:
		return j.CompanyName
	}
}

// JobInput is the POST /jobs body
type JobInput struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// DefaultJobStatus is the status a new project form starts with
const DefaultJobStatus = "Applied"

// Message is a notification in the inbox
type Message struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
