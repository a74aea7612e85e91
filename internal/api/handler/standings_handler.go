package handler

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StandingsHandler serves the public practice standings and the VJudge
// team ladder.
type StandingsHandler struct {
	standingsService *service.StandingsService
	ladderService    *service.LadderService
}

func NewStandingsHandler(standingsService *service.StandingsService, ladderService *service.LadderService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService, ladderService: ladderService}
}

func (h *StandingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/standings", h.getStandings)
	r.Get("/vjudge/standings", h.getLadder)
}

func (h *StandingsHandler) getStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.standingsService.GetStandings(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rows)
}

func (h *StandingsHandler) getLadder(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ladderService.GetStandings(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
