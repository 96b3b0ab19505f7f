package api

import (
	"net/http"

	"github.com/okian/courtzones/internal/domain/zone"
)

type zoneEntry struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// HandleZones handles GET /zones: the zone labels in canonical order.
func HandleZones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	labels := zone.Labels()
	out := make([]zoneEntry, len(labels))
	for i, l := range labels {
		out[i] = zoneEntry{Name: l.String(), Display: l.Display()}
	}
	writeJSON(w, http.StatusOK, out)
}
