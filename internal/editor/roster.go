package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ViewerRole is the access level of a viewer on a process.
type ViewerRole string

const (
	ViewerRoleViewer   ViewerRole = "viewer"
	ViewerRoleReviewer ViewerRole = "reviewer"
	ViewerRoleManager  ViewerRole = "manager"
)

// Candidate is a person to assign work to once steps are saved. The first
// candidate in the roster is the default assignee for records created by
// integrated steps.
type Candidate struct {
	ID    string
	Name  string
	Email string
}

// Viewer is a person granted read access to the process. Viewer additions
// are local to the session; no persistence call is wired for them.
type Viewer struct {
	ID    string
	Name  string
	Email string
	Role  ViewerRole
}

// Roster holds the candidate and viewer lists of an editing session. The
// lists are independent of the step collection; they merge in only at save
// time.
type Roster struct {
	candidates []Candidate
	viewers    []Viewer
}

func NewRoster() *Roster {
	return &Roster{}
}

// parsePerson interprets free-text input as a member id or an email
// address. Anything else yields a synthesized placeholder entry.
func parsePerson(input string) (id, name, email string) {
	input = strings.TrimSpace(input)

	if input != "" && strings.Contains(input, "@") && !strings.HasPrefix(input, "@") && !strings.HasSuffix(input, "@") {
		local := input[:strings.Index(input, "@")]
		return input, local, input
	}

	if isNumeric(input) {
		return input, fmt.Sprintf("Member %s", input), ""
	}

	// Placeholder entry for unresolvable input; a directory lookup is not
	// wired here.
	placeholder := uuid.New().String()
	name = input
	if name == "" {
		name = "Unnamed"
	}
	return placeholder, name, ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AddCandidate parses the input and appends a candidate.
func (r *Roster) AddCandidate(input string) Candidate {
	id, name, email := parsePerson(input)
	candidate := Candidate{ID: id, Name: name, Email: email}
	r.candidates = append(r.candidates, candidate)
	return candidate
}

// RemoveCandidate filters out the candidate with the given id.
func (r *Roster) RemoveCandidate(id string) {
	kept := r.candidates[:0]
	for _, c := range r.candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.candidates = kept
}

// AddViewer parses the input and appends a viewer with the given role.
// This updates local state only.
func (r *Roster) AddViewer(input string, role ViewerRole) Viewer {
	if role == "" {
		role = ViewerRoleViewer
	}
	id, name, email := parsePerson(input)
	viewer := Viewer{ID: id, Name: name, Email: email, Role: role}
	r.viewers = append(r.viewers, viewer)
	return viewer
}

// RemoveViewer filters out the viewer with the given id.
func (r *Roster) RemoveViewer(id string) {
	kept := r.viewers[:0]
	for _, v := range r.viewers {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	r.viewers = kept
}

// Candidates returns the candidate list.
func (r *Roster) Candidates() []Candidate {
	return r.candidates
}

// Viewers returns the viewer list.
func (r *Roster) Viewers() []Viewer {
	return r.viewers
}

// DefaultAssignee returns the first candidate, if any.
func (r *Roster) DefaultAssignee() *Candidate {
	if len(r.candidates) == 0 {
		return nil
	}
	return &r.candidates[0]
}
