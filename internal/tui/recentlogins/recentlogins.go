// ABOUTME: Remembers the email addresses recently used to sign in
// ABOUTME: Stored in <configDir>/recent.json so the login form can prefill

package recentlogins

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// MaxRecent is the maximum number of addresses to keep
const MaxRecent = 5

// Recent manages the list of recently used login emails
type Recent struct {
	configDir string
	emails    []string
}

type recentData struct {
	Emails []string `json:"emails"`
}

// New creates a Recent manager rooted at configDir. An empty dir keeps the
// list in memory only.
func New(configDir string) *Recent {
	return &Recent{configDir: configDir}
}

func (rl *Recent) configFile() string {
	return filepath.Join(rl.configDir, "recent.json")
}

// Load reads the list from disk. Missing or invalid files read as empty.
func (rl *Recent) Load() ([]string, error) {
	rl.emails = []string{}
	if rl.configDir == "" {
		return rl.emails, nil
	}

	data, err := os.ReadFile(rl.configFile())
	if os.IsNotExist(err) {
		return rl.emails, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		return rl.emails, nil
	}

	for _, e := range recent.Emails {
		if e = strings.TrimSpace(e); e != "" {
			rl.emails = append(rl.emails, e)
		}
	}
	if len(rl.emails) > MaxRecent {
		rl.emails = rl.emails[:MaxRecent]
	}
	return rl.emails, nil
}

// Save writes the list, trimmed to MaxRecent
func (rl *Recent) Save(emails []string) error {
	if len(emails) > MaxRecent {
		emails = emails[:MaxRecent]
	}
	rl.emails = emails

	if rl.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(rl.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(recentData{Emails: emails}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rl.configFile(), data, 0600)
}

// Add moves email to the front of the list. Matching is case-insensitive.
func (rl *Recent) Add(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if rl.emails == nil {
		if _, err := rl.Load(); err != nil {
			rl.emails = []string{}
		}
	}

	next := make([]string, 0, len(rl.emails)+1)
	next = append(next, email)
	for _, e := range rl.emails {
		if !strings.EqualFold(e, email) {
			next = append(next, e)
		}
	}
	return rl.Save(next)
}

// List returns the current list, most recent first
func (rl *Recent) List() []string {
	if rl.emails == nil {
		rl.Load()
	}
	return rl.emails
}

// Last returns the most recent email, or ""
func (rl *Recent) Last() string {
	if list := rl.List(); len(list) > 0 {
		return list[0]
	}
	return ""
}
