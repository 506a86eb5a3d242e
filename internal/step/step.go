// Package step models the persisted conversational state of a user.
//
// A step is stored as a string, either a bare name ("home") or a name with
// one argument encoded after a colon ("get_episode:42"). Routers look a step
// up twice: first by the full raw string, then by the name alone, so compound
// steps reach the handler registered under their prefix.
package step

import "strings"

// Step names used across the conversation graph.
const (
	Home          = "home"
	AdminHome     = "admin_home"
	AdminUpload   = "admin_upload"
	AdminUserInfo = "admin_user_info"
	GetTitle      = "get_title"
	GetEpisode    = "get_episode"
)

// Step is the decoded form of a persisted step string.
type Step struct {
	Name string
	Arg  string
}

// Parse splits a raw step string on its first colon. The suffix, if any, is
// opaque state owned by the step's handler.
func Parse(raw string) Step {
	name, arg, _ := strings.Cut(raw, ":")
	return Step{Name: name, Arg: arg}
}

// String re-encodes the step into its persisted form.
func (s Step) String() string {
	if s.Arg == "" {
		return s.Name
	}
	return s.Name + ":" + s.Arg
}

// With returns a compound step of the given name carrying arg.
func With(name, arg string) Step {
	return Step{Name: name, Arg: arg}
}
