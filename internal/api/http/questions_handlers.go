package http

import (
	"net/http"

	"github.com/examtrack/examtrack/internal/question"
)

// GET /api/questions
func ListQuestionsHandler(store *question.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.All()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch questions", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}
