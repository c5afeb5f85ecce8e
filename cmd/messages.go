// ABOUTME: Messages commands for the jobdash CLI
// ABOUTME: Lists notifications, sends one, and marks one as read

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tracker"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"notifications"},
	Short:   "Read and send notifications",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	Args:  cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		return runMessagesList(ctx, w)
	}),
}

var messagesSendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send a notification",
	Args:  cobra.MinimumNArgs(1),
	Run: runCommand(func(ctx context.Context, w io.Writer, args []string) int {
		return runMessagesSend(ctx, w, strings.Join(args, " "))
	}),
}

var messagesReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	Run: runCommand(func(ctx context.Context, w io.Writer, args []string) int {
		return runMessagesRead(ctx, w, args[0])
	}),
}

func init() {
	messagesCmd.AddCommand(messagesListCmd, messagesSendCmd, messagesReadCmd)
	rootCmd.AddCommand(messagesCmd)
}

// runMessagesList prints the inbox and returns exit code
func runMessagesList(ctx context.Context, w io.Writer) int {
	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	msgs, err := c.FetchNotifications(ctx)
	if err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, msgs)
		return exitOK
	}
	fmt.Fprintln(w, formatMessagesHuman(msgs))
	return exitOK
}

// runMessagesSend posts a notification
func runMessagesSend(ctx context.Context, w io.Writer, text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		fmt.Fprintln(w, "Error: Message is required")
		return exitInvalid
	}

	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	msg, err := c.SendNotification(ctx, text)
	if err != nil {
		return backendError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, msg)
		return exitOK
	}
	fmt.Fprintln(w, "Message sent successfully!")
	return exitOK
}

// runMessagesRead marks one notification as read
func runMessagesRead(ctx context.Context, w io.Writer, id string) int {
	c, _, code := requireSession(w)
	if code != exitOK {
		return code
	}

	if err := c.MarkRead(ctx, id); err != nil {
		return backendError(w, err)
	}
	fmt.Fprintf(w, "Marked %s as read\n", id)
	return exitOK
}

// formatMessagesHuman renders the inbox with unread markers
func formatMessagesHuman(msgs []client.Message) string {
	if len(msgs) == 0 {
		return "No messages."
	}
	inbox := tracker.NewInbox(msgs)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d unread of %d\n", inbox.Unread(), inbox.Len())
	for _, m := range inbox.Messages() {
		marker := " "
		if !m.IsRead {
			marker = "*"
		}
		fmt.Fprintf(&sb, "\n%s %s  %s", marker, m.ID, m.Message)
		if created := tracker.FormatCreated(m.CreatedAt); created != "" {
			fmt.Fprintf(&sb, "  (%s)", created)
		}
	}
	return sb.String()
}
