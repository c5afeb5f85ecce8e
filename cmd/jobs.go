// ABOUTME: Jobs commands for the jobdash CLI
// ABOUTME: Lists tracked applications and creates new ones

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/client"
)

var jobInput client.JobInput

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List and create tracked job applications",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job applications",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runJobsList(ctx, w)
	}),
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job application",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runJobsCreate(ctx, w, jobInput)
	}),
}

func init() {
	jobsCreateCmd.Flags().StringVar(&jobInput.CompanyName, "company", "", "Company name (required)")
	jobsCreateCmd.Flags().StringVar(&jobInput.JobTitle, "title", "", "Job title (required)")
	jobsCreateCmd.Flags().StringVar(&jobInput.Status, "status", client.DefaultJobStatus, "Applied, Interview, Offer, etc")
	jobsCreateCmd.Flags().StringVar(&jobInput.Notes, "notes", "", "Free-form notes")

	jobsCmd.AddCommand(jobsListCmd, jobsCreateCmd)
	rootCmd.AddCommand(jobsCmd)
}

// runJobsList prints every job and returns exit code
func runJobsList(ctx context.Context, w io.Writer) int {
	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, jobs)
		return exitOK
	}
	fmt.Fprintln(w, formatJobsHuman(jobs))
	return exitOK
}

// runJobsCreate validates and posts a new job
func runJobsCreate(ctx context.Context, w io.Writer, in client.JobInput) int {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Status = strings.TrimSpace(in.Status)
	if in.CompanyName == "" || in.JobTitle == "" {
		fmt.Fprintln(w, "Error: Company name and job title are required")
		return exitInvalid
	}
	if in.Status == "" {
		in.Status = client.DefaultJobStatus
	}

	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	job, err := c.CreateJob(ctx, in)
	if err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, job)
		return exitOK
	}
	fmt.Fprintf(w, "Project created successfully! (%s)\n", job.ID)
	return exitOK
}

// formatJobsHuman renders one line per job
func formatJobsHuman(jobs []client.Job) string {
	if len(jobs) == 0 {
		return "No jobs yet."
	}
	var sb strings.Builder
	for i, job := range jobs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%-26s %-11s %s", job.ID, job.Status, job.DisplayTitle())
	}
	return sb.String()
}
