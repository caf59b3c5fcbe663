package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
	"github.com/Vovarama1992/voci-api/internal/validation"
)

const (
	msgContentNotFound  = "content not found"
	msgBadMediaTypeID   = "media_type_id must be a positive integer"
	msgAuthorIDsNotList = "author_ids must be an array of ids"
	msgBadAuthorIDs     = "one or more author ids are invalid"
)

type contentRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	MediaTypeID int    `json:"media_type_id" validate:"required"`
	AuthorIDs   []int  `json:"author_ids"`
}

type ContentHandler struct {
	svc ports.ContentService
	log *logger.ZapLogger
}

func NewContentHandler(svc ports.ContentService, log *logger.ZapLogger) *ContentHandler {
	return &ContentHandler{
		svc: svc,
		log: log,
	}
}

// GET /contents?author_id=&content_name=
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request, _ []int) {
	var filter models.ContentFilter
	q := r.URL.Query()

	if q.Has("author_id") {
		id := leadingInt(q.Get("author_id"))
		filter.AuthorID = &id
	}
	if name := strings.TrimSpace(q.Get("content_name")); name != "" {
		filter.Name = &name
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.log, err, msgContentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /contents/{id}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request, params []int) {
	c, err := h.svc.Get(r.Context(), params[0])
	if err != nil {
		respondError(w, r, h.log, err, msgContentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /contents
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request, _ []int) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err, msgContentNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "content created",
		Fields: map[string]any{
			"id":      id,
			"authors": len(in.AuthorIDs),
		},
	})
	writeJSON(w, http.StatusCreated, messageResponse{Message: "content created", ID: id})
}

// PUT /contents/{id}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request, params []int) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), params[0], in); err != nil {
		respondError(w, r, h.log, err, msgContentNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "content updated"})
}

// DELETE /contents/{id}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request, params []int) {
	if err := h.svc.Delete(r.Context(), params[0]); err != nil {
		respondError(w, r, h.log, err, msgContentNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "content deleted",
		Fields:  map[string]any{"id": params[0]},
	})
	writeNoContent(w)
}

func (h *ContentHandler) decode(w http.ResponseWriter, r *http.Request) (models.ContentInput, bool) {
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return models.ContentInput{}, false
	}

	req := contentRequest{
		Name:        body.String("name"),
		Description: body.String("description"),
	}

	if req.MediaTypeID, err = body.ID("media_type_id"); err != nil {
		writeError(w, http.StatusBadRequest, msgBadMediaTypeID)
		return models.ContentInput{}, false
	}

	if req.AuthorIDs, err = body.IDList("author_ids"); err != nil {
		msg := msgBadAuthorIDs
		if errors.Is(err, errNotAList) {
			msg = msgAuthorIDsNotList
		}
		writeError(w, http.StatusBadRequest, msg)
		return models.ContentInput{}, false
	}

	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.ContentInput{}, false
	}

	return models.ContentInput{
		Name:        req.Name,
		Description: req.Description,
		MediaTypeID: req.MediaTypeID,
		AuthorIDs:   req.AuthorIDs,
	}, true
}
