package handlers

import (
	"net/http"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

type statusResponse struct {
	Success bool                   `json:"success"`
	Members []rest.MemberView      `json:"members"`
	Summary services.StatusSummary `json:"summary"`
}

type checkExpiredRequest struct {
	BotID int64 `json:"bot_id"`
}

type checkExpiringRequest struct {
	BotID         int64 `json:"bot_id"`
	ThresholdDays int   `json:"threshold_days"`
}

type checkExpiredResponse struct {
	Success bool `json:"success"`
	*services.ExpiredScanResult
}

type checkExpiringResponse struct {
	Success bool `json:"success"`
	*services.ExpiringScanResult
}

func (h *Handlers) GetMembershipStatus(w http.ResponseWriter, r *http.Request) {
	var q services.StatusQuery
	if err := runtime.BindQueryParameter("form", true, true, "bot_id", r.URL.Query(), &q.BotID); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &q.Status); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	report, err := h.queryService.Status(r.Context(), q)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	members := make([]rest.MemberView, 0, len(report.Entries))
	for _, e := range report.Entries {
		members = append(members, rest.ToMemberView(e))
	}

	rest.WriteJSON(w, http.StatusOK, statusResponse{
		Success: true,
		Members: members,
		Summary: report.Summary,
	}, h.logger)
}

func (h *Handlers) CheckExpired(w http.ResponseWriter, r *http.Request) {
	var req checkExpiredRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	res, err := h.scanner.Scan(r.Context(), services.ScanCommand{BotID: req.BotID, Mode: services.ModeCheckExpired})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, checkExpiredResponse{Success: true, ExpiredScanResult: res.Expired}, h.logger)
}

func (h *Handlers) CheckExpiring(w http.ResponseWriter, r *http.Request) {
	var req checkExpiringRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	res, err := h.scanner.Scan(r.Context(), services.ScanCommand{
		BotID:         req.BotID,
		Mode:          services.ModeCheckExpiring,
		ThresholdDays: req.ThresholdDays,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, checkExpiringResponse{Success: true, ExpiringScanResult: res.Expiring}, h.logger)
}
