package handlers

import "net/http"

// PortalStats - счетчики сущностей портала (только staff)
func (h *Handlers) PortalStats(w http.ResponseWriter, r *http.Request) {
	actor, err := h.currentUser(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	stats, err := h.StatsService.PortalStats(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
