package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"heroes/internal/hero"
	"heroes/internal/jsonutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HeroHandler serves the /heroes resource.
type HeroHandler struct {
	store   Store
	metrics *Metrics
	logger  *zap.Logger
}

// NewHeroHandler creates a handler backed by store.
func NewHeroHandler(store Store, metrics *Metrics, logger *zap.Logger) *HeroHandler {
	return &HeroHandler{store: store, metrics: metrics, logger: logger}
}

// ListHeroes handles GET /heroes and GET /heroes?name=term.
func (h *HeroHandler) ListHeroes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("name") {
		heroes, err := h.store.Search(r.Context(), q.Get("name"))
		if err != nil {
			h.respondStoreError(w, "search heroes", err)
			return
		}
		h.respond(w, http.StatusOK, heroes)
		return
	}

	heroes, err := h.store.List(r.Context())
	if err != nil {
		h.respondStoreError(w, "list heroes", err)
		return
	}
	if h.metrics != nil {
		h.metrics.setHeroes(len(heroes))
	}
	h.respond(w, http.StatusOK, heroes)
}

// GetHero handles GET /heroes/{id}.
func (h *HeroHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	id, ok := h.heroID(w, r)
	if !ok {
		return
	}
	found, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, "get hero", err)
		return
	}
	h.respond(w, http.StatusOK, found)
}

// CreateHero handles POST /heroes.
func (h *HeroHandler) CreateHero(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.DecodeStrict(r.Body, &req, "invalid request body"); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	created, err := h.store.Create(r.Context(), req.Name)
	if err != nil {
		h.respondStoreError(w, "create hero", err)
		return
	}
	h.logger.Info("hero created", zap.Int("id", created.ID), zap.String("name", created.Name))
	h.respond(w, http.StatusCreated, created)
}

// UpdateHero handles PUT /heroes. The body is the full hero; the id selects the record.
func (h *HeroHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := jsonutil.DecodeStrict(r.Body, &req, "invalid request body"); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	if err := h.store.Update(r.Context(), hero.Hero{ID: req.ID, Name: req.Name}); err != nil {
		h.respondStoreError(w, "update hero", err)
		return
	}
	h.logger.Info("hero updated", zap.Int("id", req.ID), zap.String("name", req.Name))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHero handles DELETE /heroes/{id}.
func (h *HeroHandler) DeleteHero(w http.ResponseWriter, r *http.Request) {
	id, ok := h.heroID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, "delete hero", err)
		return
	}
	h.logger.Info("hero deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *HeroHandler) heroID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "heroID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid hero id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func (h *HeroHandler) respond(w http.ResponseWriter, status int, v any) {
	if err := jsonutil.WriteJSON(w, status, v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func (h *HeroHandler) respondError(w http.ResponseWriter, status int, msg string) {
	if err := jsonutil.WriteError(w, status, msg); err != nil {
		h.logger.Warn("write error response", zap.Error(err))
	}
}

func (h *HeroHandler) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Error(op+" failed", zap.Error(err))
	h.respondError(w, http.StatusInternalServerError, op+" failed")
}
