package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escuelanichiboku/nichiboku-backend/internal/http/response"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
	"github.com/escuelanichiboku/nichiboku-backend/internal/services"
)

type AwardHandler struct {
	log          *logger.Logger
	awardService services.AwardService
	statsService services.StatsService
}

func NewAwardHandler(log *logger.Logger, awardService services.AwardService, statsService services.StatsService) *AwardHandler {
	return &AwardHandler{
		log:          log.With("handler", "AwardHandler"),
		awardService: awardService,
		statsService: statsService,
	}
}

func (h *AwardHandler) AwardOnEnter(c *gin.Context) {
	meta, ok := bindScreenMeta(c)
	if !ok {
		return
	}
	res, err := h.awardService.AwardOnEnter(c.Request.Context(), c.Param("screenKey"), meta)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "award_failed", err)
		return
	}
	response.RespondOK(c, res)
}

func (h *AwardHandler) AwardOnSuccess(c *gin.Context) {
	meta, ok := bindScreenMeta(c)
	if !ok {
		return
	}
	res, err := h.awardService.AwardOnSuccess(c.Request.Context(), c.Param("screenKey"), meta)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "award_failed", err)
		return
	}
	response.RespondOK(c, res)
}

// bindScreenMeta reads the optional {"meta": {...}} body on screen award
// calls. It reports false only after writing an error response.
func bindScreenMeta(c *gin.Context) (map[string]any, bool) {
	if c.Request.ContentLength <= 0 {
		return nil, true
	}
	var req struct {
		Meta map[string]any `json:"meta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return nil, false
	}
	return req.Meta, true
}

func (h *AwardHandler) GetAwardMode(c *gin.Context) {
	key := c.Param("screenKey")
	mode, ok := h.awardService.GetAwardMode(key)
	if !ok {
		response.RespondError(c, http.StatusNotFound, "no_config", fmt.Errorf("no award rule for screen"))
		return
	}
	response.RespondOK(c, gin.H{"screen_key": key, "mode": string(mode)})
}

func (h *AwardHandler) AwardAchievement(c *gin.Context) {
	var req struct {
		XP   int            `json:"xp"`
		Sub  string         `json:"sub"`
		Meta map[string]any `json:"meta"`
	}
	// Body is optional; a bare unlock with no xp is valid.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	res, err := h.awardService.AwardAchievement(c.Request.Context(), c.Param("achievementId"), req.XP, req.Sub, req.Meta)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "award_failed", err)
		return
	}
	response.RespondOK(c, res)
}

func (h *AwardHandler) GrantXP(c *gin.Context) {
	var req struct {
		Amount int    `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.awardService.GrantXP(c.Request.Context(), req.Amount, req.Reason); err != nil {
		response.RespondError(c, http.StatusBadRequest, "xp_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"granted": req.Amount})
}

func (h *AwardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

func (h *AwardHandler) ListEvents(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = n
	}
	events, err := h.statsService.ListEvents(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "events_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

func (h *AwardHandler) ListProgress(c *gin.Context) {
	rows, err := h.statsService.ListProgress(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "progress_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"progress": rows})
}

func (h *AwardHandler) ListAchievements(c *gin.Context) {
	rows, err := h.statsService.ListAchievements(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "achievements_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"achievements": rows})
}

func (h *AwardHandler) GetAchievement(c *gin.Context) {
	row, err := h.statsService.GetAchievement(c.Request.Context(), c.Param("achievementId"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "achievement_failed", err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("achievement not unlocked"))
		return
	}
	response.RespondOK(c, row)
}
