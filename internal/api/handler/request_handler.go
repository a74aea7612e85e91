package handler

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/common"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RequestHandler has two faces: the public passkey-gated submission routes
// and the admin review routes.
type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RegisterPublicRoutes mounts the submission endpoints; the passkey check
// happens in the service.
func (h *RequestHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/handle", h.submitHandle)
	r.Post("/team", h.submitTeam)
}

// RegisterAdminRoutes mounts the review endpoints behind the authenticator.
func (h *RequestHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/{requestID}/approve", h.approve)
	r.Post("/{requestID}/reject", h.reject)
}

func (h *RequestHandler) submitHandle(w http.ResponseWriter, r *http.Request) {
	var input service.HandleRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	request, err := h.requestService.SubmitHandleRequest(r.Context(), input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) submitTeam(w http.ResponseWriter, r *http.Request) {
	var input service.TeamRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	request, err := h.requestService.SubmitTeamRequest(r.Context(), input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) approve(w http.ResponseWriter, r *http.Request) {
	request, err := h.requestService.Approve(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, request)
}

func (h *RequestHandler) reject(w http.ResponseWriter, r *http.Request) {
	request, err := h.requestService.Reject(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, request)
}
