package http

import (
	"net/http"

	"kartografi-service/internal/app"
)

// CityHandler exposes the city coordinate lookups used by the map games.
type CityHandler struct {
	cities app.CityStore
}

func NewCityHandler(cities app.CityStore) *CityHandler {
	return &CityHandler{cities: cities}
}

func (h *CityHandler) Random(w http.ResponseWriter, r *http.Request) {
	city, err := h.cities.Random(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"city": city.Name})
}

func (h *CityHandler) Coordinates(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "city name required")
		return
	}

	city, err := h.cities.ByName(r.Context(), name)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lat": city.Lat, "lng": city.Lng})
}
