package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackable/internal/adapters/http/dto"
	"github.com/jsamuelsen/stackable/internal/adapters/sqlite"
	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
)

// NotesHandler handles note persistence endpoints. Both endpoints run the
// same action: request ID, logging, authorization, and the database session
// all come from the chain, so the handler only binds, runs, and renders.
type NotesHandler struct {
	action *stack.Action
}

// NewNotesHandler creates a new notes handler around the given action.
func NewNotesHandler(action *stack.Action) *NotesHandler {
	return &NotesHandler{action: action}
}

// NoteResponse is the HTTP response structure for a note.
type NoteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// toNoteResponse converts a domain Note to an HTTP response.
func toNoteResponse(n *domain.Note) *NoteResponse {
	return &NoteResponse{
		ID:        n.ID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
}

// Create handles POST /api/v1/notes
// Persists a note for the authenticated caller within the chain's session.
func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		if errors.Is(err, dto.ErrValidation) {
			dto.HandleValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "invalid request body")

		return
	}

	seeds := []stack.Seed{
		stack.SeedValue(elements.RequiredAuthorityKey, domain.AuthorityNormal),
	}

	out, err := h.action.Run(c.Request.Context(), c.Request, seeds, func(sc stack.Context) (any, error) {
		user, err := stack.Get(sc, elements.UserKey)
		if err != nil {
			return nil, err
		}

		sess, err := requireSession(sc)
		if err != nil {
			return nil, err
		}

		note := &domain.Note{AuthorID: user.ID, Body: req.Body}

		err = sqlite.SaveNote(sc.Context(), sess, note)
		if err != nil {
			return nil, err
		}

		return render(sc, toNoteResponse(note)), nil
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respond(c, http.StatusCreated, out)
}

// List handles GET /api/v1/notes
// Returns the authenticated caller's notes, newest first.
func (h *NotesHandler) List(c *gin.Context) {
	seeds := []stack.Seed{
		stack.SeedValue(elements.RequiredAuthorityKey, domain.AuthorityNormal),
	}

	out, err := h.action.Run(c.Request.Context(), c.Request, seeds, func(sc stack.Context) (any, error) {
		user, err := stack.Get(sc, elements.UserKey)
		if err != nil {
			return nil, err
		}

		sess, err := requireSession(sc)
		if err != nil {
			return nil, err
		}

		notes, err := sqlite.ListNotes(sc.Context(), sess, user.ID)
		if err != nil {
			return nil, err
		}

		resp := make([]*NoteResponse, 0, len(notes))
		for _, n := range notes {
			resp = append(resp, toNoteResponse(n))
		}

		return render(sc, resp), nil
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respond(c, http.StatusOK, out)
}

// requireSession fetches the chain's database session and narrows it to the
// concrete SQLite type the persistence helpers work on.
func requireSession(sc stack.Context) (*sqlite.Session, error) {
	sess, err := stack.Get(sc, elements.SessionKey)
	if err != nil {
		return nil, err
	}

	sqlSess, ok := sess.(*sqlite.Session)
	if !ok {
		return nil, domain.NewUnavailableError("sqlite", "unexpected session type")
	}

	return sqlSess, nil
}
