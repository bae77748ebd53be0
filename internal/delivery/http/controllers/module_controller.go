package controllers

import (
	"log/slog"
	"net/http"

	"eventcreator/internal/delivery/http/helpers"
	"eventcreator/internal/domain"
)

// ModuleConfigsResponse is the response for GET /modules/configs.
type ModuleConfigsResponse struct {
	Success bool                  `json:"success"`
	Modules []domain.ModuleConfig `json:"modules"`
}

type ModuleController struct {
	Logger  *slog.Logger
	Service domain.ModuleService
}

func NewModuleController(logger *slog.Logger, svc domain.ModuleService) *ModuleController {
	return &ModuleController{
		Logger:  logger,
		Service: svc,
	}
}

// Configs godoc
// @Summary List module configs
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ModuleConfigsResponse
// @Router /modules/configs [get]
func (c *ModuleController) Configs(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, ModuleConfigsResponse{Success: true, Modules: c.Service.Configs(r.Context())})
}

// Save godoc
// @Summary Save module data
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleID path string true "Module key, {type}_{instanceId}"
// @Param data body object true "Module data"
// @Success 200 {object} domain.ModuleSaved
// @Failure 400 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /modules/{moduleID} [post]
func (c *ModuleController) Save(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if !helpers.DecodeAndValidate(w, r, &data) {
		return
	}
	saved, err := c.Service.SaveData(r.Context(), r.PathValue("moduleID"), data)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to save module")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, saved)
}
