package routes

import (
	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/router"
)

// RegisterAPIRoutes registers the postcode and address API.
// Every route is rate limited when deps.RateLimit is set; POST bodies are
// capped at deps.MaxBodyBytes. Unknown /api/ paths get a JSON 404.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	api := r
	if deps.RateLimit != nil {
		api = r.Group(deps.RateLimit)
	}

	api.Get("/api/postcodes/{postcode}", deps.PostcodeHandler.Lookup)

	body := api.Group(router.Middleware(middleware.MaxBodySize(deps.MaxBodyBytes)))
	body.Post("/api/postcodes/normalize", deps.PostcodeHandler.Normalize)
	body.Post("/api/postcodes/validate", deps.PostcodeHandler.ValidateBatch)
	body.Post("/api/addresses/validate", deps.AddressHandler.Validate)

	api.Any("/api/", handler.NotFound)
}
