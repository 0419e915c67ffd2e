package ui

import (
	"net/http"

	"infinite-experiment/crewcenter/internal/api"
	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/models"
)

// PirepUIHandler serves the HTML pages for filing and editing reports
type PirepUIHandler struct {
	workflow api.PirepWorkflow
	settings api.SettingsProvider
	flash    *common.FlashStore
}

func NewPirepUIHandler(workflow api.PirepWorkflow, settings api.SettingsProvider, flash *common.FlashStore) *PirepUIHandler {
	return &PirepUIHandler{
		workflow: workflow,
		settings: settings,
		flash:    flash,
	}
}

// pageData starts the template data with the pending flash messages
func (h *PirepUIHandler) pageData(r *http.Request, title string) map[string]interface{} {
	return map[string]interface{}{
		"Title":   title,
		"Flashes": h.flash.Pop(auth.GetSessionID(r.Context())),
		"User":    auth.GetUser(r.Context()),
	}
}

// redirectWith queues a flash message and sends the browser to target with 303
func (h *PirepUIHandler) redirectWith(w http.ResponseWriter, r *http.Request, target string, level common.FlashLevel, message string) {
	if message != "" {
		h.flash.Put(auth.GetSessionID(r.Context()), level, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failWith flashes the user-facing text for err and redirects
func (h *PirepUIHandler) failWith(w http.ResponseWriter, r *http.Request, target string, err error) {
	sessionID := auth.GetSessionID(r.Context())

	pe, ok := models.AsPirepError(err)
	if !ok {
		logging.Error("UI: PIREP request failed", "error", err.Error(), "path", r.URL.Path)
		h.redirectWith(w, r, target, common.FlashError, constants.MsgInternal)
		return
	}

	h.flash.Put(sessionID, common.FlashError, pe.Message)
	for _, name := range sortedKeys(pe.Fields) {
		h.flash.Put(sessionID, common.FlashError, pe.Fields[name])
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
