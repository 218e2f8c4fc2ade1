package dto

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	// Body is the note text. Bounded to keep rows small.
	Body string `json:"body" validate:"required,notempty,max=2000"`
}
