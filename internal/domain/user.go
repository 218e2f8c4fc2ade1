package domain

import "time"

// Authority is the privilege level an action requires and a user holds.
// Levels are ordered: a user satisfies a requirement when their authority
// is at least the required one.
type Authority int

const (
	// AuthorityGuest is the level of an unauthenticated caller.
	AuthorityGuest Authority = iota

	// AuthorityNormal is the level of a signed-in user.
	AuthorityNormal

	// AuthorityAdmin is the level of an administrator.
	AuthorityAdmin
)

// String returns the authority name for logs and responses.
func (a Authority) String() string {
	switch a {
	case AuthorityGuest:
		return "guest"
	case AuthorityNormal:
		return "normal"
	case AuthorityAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Satisfies reports whether this authority meets the required level.
func (a Authority) Satisfies(required Authority) bool {
	return a >= required
}

// User is the authenticated caller of an action.
type User struct {
	// ID is the unique user identifier.
	ID string

	// Name is the display name.
	Name string

	// Authority is the privilege level the user holds.
	Authority Authority
}

// Note is a short message a user persists through an action.
type Note struct {
	// ID is the unique note identifier.
	ID string

	// AuthorID is the ID of the user who created the note.
	AuthorID string

	// Body is the note text.
	Body string

	// CreatedAt is when the note was persisted.
	CreatedAt time.Time
}

// Template identifies the response rendering an action should use. It is
// selected from request headers before the business logic runs.
type Template string

const (
	// TemplateJSON renders the action result as a JSON document.
	TemplateJSON Template = "json"

	// TemplateText renders the action result as plain text.
	TemplateText Template = "text"
)
