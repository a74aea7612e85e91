package handler

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/common"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// TeamHandler is the admin surface for ladder teams, tracked contests, and
// the ladder config. Mounted behind the admin authenticator.
type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/teams", h.listTeams)
	r.Post("/teams", h.createTeam)
	r.Delete("/teams/{teamID}", h.deleteTeam)

	r.Get("/contests", h.listContests)
	r.Post("/contests", h.createContest)
	r.Patch("/contests/{contestID}", h.setContestEnabled)
	r.Delete("/contests/{contestID}", h.deleteContest)

	r.Get("/config", h.getConfig)
	r.Put("/config", h.setConfig)
}

func (h *TeamHandler) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) createTeam(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	team, err := h.teamService.CreateTeam(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.teamService.DeleteTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *TeamHandler) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.teamService.ListContests(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *TeamHandler) createContest(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	contest, err := h.teamService.CreateContest(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

func (h *TeamHandler) setContestEnabled(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	contest, err := h.teamService.SetContestEnabled(r.Context(), chi.URLParam(r, "contestID"), req.Enabled)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *TeamHandler) deleteContest(w http.ResponseWriter, r *http.Request) {
	if err := h.teamService.DeleteContest(r.Context(), chi.URLParam(r, "contestID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondNoContent(w)
}

func (h *TeamHandler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.teamService.GetConfig(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, cfg)
}

func (h *TeamHandler) setConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EloMode string `json:"eloMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	cfg, err := h.teamService.SetConfig(r.Context(), req.EloMode)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, cfg)
}
