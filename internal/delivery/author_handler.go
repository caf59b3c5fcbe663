package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voci-api/internal/ports"
	"github.com/Vovarama1992/voci-api/internal/validation"
)

const msgAuthorNotFound = "author not found"

type authorRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Surname string `json:"surname" validate:"required,max=255"`
}

type AuthorHandler struct {
	svc ports.AuthorService
	log *logger.ZapLogger
}

func NewAuthorHandler(svc ports.AuthorService, log *logger.ZapLogger) *AuthorHandler {
	return &AuthorHandler{
		svc: svc,
		log: log,
	}
}

// GET /authors
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request, _ []int) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err, msgAuthorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /authors/{id}
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request, params []int) {
	a, err := h.svc.Get(r.Context(), params[0])
	if err != nil {
		respondError(w, r, h.log, err, msgAuthorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// POST /authors
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request, _ []int) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, err := h.svc.Create(r.Context(), req.Name, req.Surname)
	if err != nil {
		respondError(w, r, h.log, err, msgAuthorNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "author created",
		Fields:  map[string]any{"id": id},
	})
	writeJSON(w, http.StatusCreated, messageResponse{Message: "author created", ID: id})
}

// PUT /authors/{id}
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request, params []int) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.svc.Update(r.Context(), params[0], req.Name, req.Surname); err != nil {
		respondError(w, r, h.log, err, msgAuthorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "author updated"})
}

// DELETE /authors/{id}
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request, params []int) {
	if err := h.svc.Delete(r.Context(), params[0]); err != nil {
		respondError(w, r, h.log, err, msgAuthorNotFound)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "author deleted",
		Fields:  map[string]any{"id": params[0]},
	})
	writeNoContent(w)
}

func (h *AuthorHandler) decode(w http.ResponseWriter, r *http.Request) (authorRequest, bool) {
	body, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return authorRequest{}, false
	}

	req := authorRequest{
		Name:    body.String("name"),
		Surname: body.String("surname"),
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return authorRequest{}, false
	}
	return req, true
}
