package auth

import (
	"strings"

	"github.com/taskflowhq/taskflow/internal/api"
)

// DemoDirectory resolves a small set of built-in accounts without touching
// the network. Demo sessions carry no bearer token, so every later backend
// call would fail; they exist for offline walkthroughs only.
type DemoDirectory struct {
	accounts map[string]api.User
}

// NewDemoDirectory returns the built-in demo accounts.
func NewDemoDirectory() *DemoDirectory {
	return &DemoDirectory{
		accounts: map[string]api.User{
			"demoadmin@company.com": {
				ID:       -1,
				Email:    "demoadmin@company.com",
				FullName: "Demo Admin",
				Role:     "admin",
				IsActive: true,
			},
		},
	}
}

// Lookup matches an identity against the demo accounts. Any password is
// accepted; the directory exists to demonstrate flows, not to gate them.
func (d *DemoDirectory) Lookup(identity, _ string) (*api.User, bool) {
	user, ok := d.accounts[strings.ToLower(strings.TrimSpace(identity))]
	if !ok {
		return nil, false
	}
	return &user, true
}
