//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrent_NotesAreIsolatedPerCaller hammers the service with
// concurrent writers and verifies each caller only ever sees their own
// notes afterwards. One chain instance serves every request; isolation
// comes from the per-request attribute bag and session.
func TestConcurrent_NotesAreIsolatedPerCaller(t *testing.T) {
	baseURL := newTestService(t)
	client := &http.Client{Timeout: 10 * time.Second}

	const (
		callers        = 8
		notesPerCaller = 5
	)

	var wg sync.WaitGroup

	errs := make(chan error, callers*notesPerCaller)

	for caller := range callers {
		subject := fmt.Sprintf("user-%d", caller)

		wg.Go(func() {
			for n := range notesPerCaller {
				body := fmt.Sprintf(`{"body":"note %d from %s"}`, n, subject)

				req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/notes", strings.NewReader(body))
				if err != nil {
					errs <- err
					return
				}

				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("X-User-ID", subject)

				resp, err := client.Do(req)
				if err != nil {
					errs <- err
					return
				}

				payload, _ := io.ReadAll(resp.Body)
				resp.Body.Close()

				if resp.StatusCode != http.StatusCreated {
					errs <- fmt.Errorf("%s: unexpected status %d: %s", subject, resp.StatusCode, payload)
					return
				}
			}
		})
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	if t.Failed() {
		return
	}

	// Every caller sees exactly their own notes
	for caller := range callers {
		subject := fmt.Sprintf("user-%d", caller)

		req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/notes", nil)
		require.NoError(t, err)
		req.Header.Set("X-User-ID", subject)

		resp, err := client.Do(req)
		require.NoError(t, err)

		payload, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(payload))

		var notes []struct {
			AuthorID string `json:"authorId"`
			Body     string `json:"body"`
		}

		require.NoError(t, json.Unmarshal(payload, &notes))
		assert.Len(t, notes, notesPerCaller, "caller %s", subject)

		for _, note := range notes {
			assert.Equal(t, subject, note.AuthorID)
			assert.Contains(t, note.Body, subject)
		}
	}
}
