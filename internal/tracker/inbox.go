// ABOUTME: Notification inbox state for the messages page
// ABOUTME: Reconciles mark-read results into the locally held list

package tracker

import "github.com/markalston/jobdash/internal/client"

// Inbox holds the messages last fetched from the backend
type Inbox struct {
	messages []client.Message
}

// NewInbox copies messages into a new inbox
func NewInbox(messages []client.Message) *Inbox {
	in := &Inbox{}
	in.Replace(messages)
	return in
}

// Replace swaps in a wholesale re-fetch
func (in *Inbox) Replace(messages []client.Message) {
	in.messages = append([]client.Message(nil), messages...)
}

// Messages returns a copy of the list in backend order
func (in *Inbox) Messages() []client.Message {
	return append([]client.Message(nil), in.messages...)
}

// Len returns the number of messages
func (in *Inbox) Len() int {
	return len(in.messages)
}

// At returns the message at index i
func (in *Inbox) At(i int) (client.Message, bool) {
	if i < 0 || i >= len(in.messages) {
		return client.Message{}, false
	}
	return in.messages[i], true
}

// MarkRead sets IsRead on exactly the message with the given id
func (in *Inbox) MarkRead(id string) bool {
	for i := range in.messages {
		if in.messages[i].ID == id {
			in.messages[i].IsRead = true
			return true
		}
	}
	return false
}

// Unread counts messages not yet read
func (in *Inbox) Unread() int {
	n := 0
	for _, m := range in.messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}
