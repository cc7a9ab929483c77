package handlers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"accessibuddy/browse"
	"accessibuddy/middleware"
	"accessibuddy/models"
	"accessibuddy/services"
	"accessibuddy/utils/errors"
)

type POIHandler struct {
	geoService *services.GeoService
}

type NearbyPOIResponse struct {
	NearbyPOIs []services.NearbyPOI `json:"nearby_pois"`
	Count      int                  `json:"count"`
	Lat        float64              `json:"lat"`
	Lon        float64              `json:"lon"`
	Radius     float64              `json:"radius_km"`
}

type CategoriesResponse struct {
	Categories []services.CategoryCount `json:"categories"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Loaded   int    `json:"loaded"`
	Rejected int    `json:"rejected"`
}

func NewPOIHandler(geoService *services.GeoService) *POIHandler {
	return &POIHandler{geoService: geoService}
}

// Register mounts the POI routes on r.
func (h *POIHandler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET", "OPTIONS")
	r.HandleFunc("/categories", h.GetCategories).Methods("GET", "OPTIONS")
	r.HandleFunc("/pois", h.BrowsePOIs).Methods("GET", "OPTIONS")
	r.HandleFunc("/pois/nearby", h.GetNearbyPOIs).Methods("GET", "OPTIONS")
	r.HandleFunc("/pois/{id}", h.GetPOI).Methods("GET", "OPTIONS")
}

func (h *POIHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.geoService.Ready() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		middleware.WriteJSON(w, HealthResponse{Status: "loading"})
		return
	}
	middleware.WriteJSON(w, HealthResponse{
		Status:   "ok",
		Loaded:   h.geoService.Count(),
		Rejected: h.geoService.Rejected(),
	})
}

func (h *POIHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.geoService.Categories()
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, CategoriesResponse{Categories: categories})
}

// BrowsePOIs renders the map browser view. Query parameters:
//
//	categories  comma-separated enabled categories; absent enables all
//	q           search text
//	radius      search radius in km
//	selected    id of the selected POI
func (h *POIHandler) BrowsePOIs(w http.ResponseWriter, r *http.Request) {
	state, err := h.parseState(r.URL.Query())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	view, err := h.geoService.Browse(state)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, view)
}

func (h *POIHandler) parseState(q url.Values) (browse.State, error) {
	state := browse.NewState(h.geoService.DefaultRadiusKm())

	if _, ok := q["categories"]; ok {
		for _, c := range models.Categories {
			state = state.SetCategory(c, false)
		}
		for _, raw := range strings.Split(q.Get("categories"), ",") {
			if raw = strings.TrimSpace(raw); raw == "" {
				continue
			}
			c, ok := models.LookupCategory(raw)
			if !ok {
				return state, errors.InvalidParam("categories", raw)
			}
			state = state.SetCategory(c, true)
		}
	}

	if raw := q.Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, errors.InvalidParam("radius", raw)
		}
		state = state.SetRadius(radius)
	}

	return state.SetSearch(q.Get("q")).Select(q.Get("selected")), nil
}

func (h *POIHandler) GetPOI(w http.ResponseWriter, r *http.Request) {
	detail, err := h.geoService.GetPOI(mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, detail)
}

func (h *POIHandler) GetNearbyPOIs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		middleware.WriteError(w, errors.InvalidParam("lat", q.Get("lat")))
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		middleware.WriteError(w, errors.InvalidParam("lon", q.Get("lon")))
		return
	}
	radius := h.geoService.DefaultRadiusKm()
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(radius, 0) {
			middleware.WriteError(w, errors.InvalidParam("radius", raw))
			return
		}
		if !(radius > 0) {
			radius = h.geoService.DefaultRadiusKm()
		}
	}
	var category models.Category
	if raw := q.Get("type"); raw != "" {
		c, ok := models.LookupCategory(raw)
		if !ok {
			middleware.WriteError(w, errors.InvalidParam("type", raw))
			return
		}
		category = c
	}

	pois, err := h.geoService.FindNearbyPOIs(r.Context(), lat, lon, radius, category)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, NearbyPOIResponse{
		NearbyPOIs: pois,
		Count:      len(pois),
		Lat:        lat,
		Lon:        lon,
		Radius:     radius,
	})
}
