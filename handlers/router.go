package handlers

import (
	"github.com/gorilla/mux"

	"accessibuddy/middleware"
	"accessibuddy/services"
)

// NewRouter wires the POI routes behind the request logger, panic recovery
// and CORS middleware.
func NewRouter(geoService *services.GeoService, allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	NewPOIHandler(geoService).Register(r)
	return r
}
