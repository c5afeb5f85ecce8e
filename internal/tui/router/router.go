// ABOUTME: Route table and guard for the TUI shell
// ABOUTME: Maps paths to screens and redirects the root path by session state

package router

import "strings"

// Known paths
const (
	Root      = "/"
	Login     = "/login"
	Register  = "/register"
	Dashboard = "/dashboard"
	Profile   = "/profile"
	Messages  = "/messages"
	Calendar  = "/calendar"
	Settings  = "/settings"
	NotFound  = "/404"
)

// Route describes one screen
type Route struct {
	Path  string
	Title string
	// Shell is false for screens drawn without sidebar and header
	Shell bool
}

var routes = []Route{
	{Path: Login, Title: "Sign in", Shell: false},
	{Path: Register, Title: "Create account", Shell: false},
	{Path: Dashboard, Title: "Dashboard", Shell: true},
	{Path: Profile, Title: "Profile", Shell: true},
	{Path: Messages, Title: "Messages", Shell: true},
	{Path: Calendar, Title: "Calendar", Shell: true},
	{Path: Settings, Title: "Settings", Shell: true},
}

var notFound = Route{Path: NotFound, Title: "Not found", Shell: true}

// Routes returns the routable screens in declaration order
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route registered for path
func Lookup(path string) (Route, bool) {
	path = normalize(path)
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve picks the screen for path. Only the root path looks at the
// session; every other known path renders whether or not a token exists.
func Resolve(path string, authenticated bool) Route {
	path = normalize(path)
	if path == Root {
		if authenticated {
			r, _ := Lookup(Dashboard)
			return r
		}
		r, _ := Lookup(Login)
		return r
	}
	if r, ok := Lookup(path); ok {
		return r
	}
	return notFound
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Root
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return Root
		}
	}
	return path
}
