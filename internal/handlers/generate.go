package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepplan-backend/internal/domain"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen"
	"github.com/yungbote/prepplan-backend/internal/platform/apierr"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

type GenerateHandler struct {
	log *logger.Logger
	uc  plangen.Usecases
}

func NewGenerateHandler(log *logger.Logger, uc plangen.Usecases) *GenerateHandler {
	return &GenerateHandler{
		log: log.With("handler", "GenerateHandler"),
		uc:  uc,
	}
}

type generateRoutineRequest struct {
	Profile     map[string]any      `json:"profile"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}

type generatePrepRequest struct {
	Profile map[string]any `json:"profile"`
}

type rerollRequest struct {
	Profile     map[string]any `json:"profile"`
	CurrentPlan map[string]any `json:"currentPlan"`
}

// POST /generate/routine
// {profile, preferences?} -> 200 {plan}. Only a profile schema violation is
// a 400; model-side failures resolve to fallback, never a 5xx.
func (h *GenerateHandler) GenerateRoutine(c *gin.Context) {
	var req generateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidJSON, err))
		return
	}
	profile, verr := plangen.ParseProfile(req.Profile, h.log)
	if verr != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidProfile, verr))
		return
	}
	plan := h.uc.GenerateRoutine(c.Request.Context(), profile, req.Preferences)
	RespondOK(c, gin.H{"plan": plan})
}

// POST /generate/prep
// {profile} -> 200 {prep}.
func (h *GenerateHandler) GeneratePrep(c *gin.Context) {
	var req generatePrepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidJSON, err))
		return
	}
	profile, verr := plangen.ParseProfile(req.Profile, h.log)
	if verr != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidProfile, verr))
		return
	}
	prep := h.uc.GeneratePrep(c.Request.Context(), profile)
	RespondOK(c, gin.H{"prep": prep})
}

// POST /reroll/:section
// {profile, currentPlan} -> 200 {<section>: ...}. 400 when the section is
// unknown or currentPlan fails the plan schema (no model call in that
// case); any downstream failure returns the current section unchanged.
func (h *GenerateHandler) Reroll(c *gin.Context) {
	section := c.Param("section")
	var req rerollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidJSON, err))
		return
	}
	profile, verr := plangen.ParseProfile(req.Profile, h.log)
	if verr != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidProfile, verr))
		return
	}
	out, verr := h.uc.Reroll(c.Request.Context(), section, profile, req.CurrentPlan)
	if verr != nil {
		RespondError(c, apierr.BadRequest(apierr.CodeInvalidRequest, verr))
		return
	}
	RespondOK(c, out)
}
