package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/domain"
	"github.com/Vovarama1992/voci-api/internal/infra"
)

const (
	msgInvalidBody = "invalid request body"
	msgInternal    = "internal server error"
)

// respondError maps a service error onto a status. Only storage failures
// are logged; their cause never reaches the client.
func respondError(w http.ResponseWriter, r *http.Request, log *logger.ZapLogger, err error, notFound string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	default:
		fields := map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": RequestID(r.Context()),
		}
		switch {
		case infra.IsUniqueViolation(err):
			fields["constraint"] = "unique"
		case infra.IsForeignKeyViolation(err):
			fields["constraint"] = "foreign_key"
		}

		log.Log(logger.LogEntry{
			Level:   "error",
			Message: "storage failure",
			Fields:  fields,
			Error:   err,
		})
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
