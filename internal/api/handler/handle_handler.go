package handler

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/common"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleHandler is the admin CRUD surface for tracked handles. All routes
// are mounted behind the admin authenticator.
type HandleHandler struct {
	handleService *service.HandleService
}

func NewHandleHandler(handleService *service.HandleService) *HandleHandler {
	return &HandleHandler{handleService: handleService}
}

func (h *HandleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{handleID}", h.update)
	r.Delete("/{handleID}", h.delete)
	r.Post("/{handleID}/refresh", h.refresh)
}

func (h *HandleHandler) list(w http.ResponseWriter, r *http.Request) {
	handles, err := h.handleService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, handles)
}

func (h *HandleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	handle, err := h.handleService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, handle)
}

func (h *HandleHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.CreateHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	handle, err := h.handleService.Update(r.Context(), chi.URLParam(r, "handleID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, handle)
}

func (h *HandleHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.handleService.Delete(r.Context(), chi.URLParam(r, "handleID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *HandleHandler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.handleService.Refresh(r.Context(), chi.URLParam(r, "handleID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusAccepted, common.MessageResponse{Message: "Refresh scheduled"})
}
