package routes

import (
	"github.com/dukerupert/ukpostcode/internal/handler/api"
	"github.com/dukerupert/ukpostcode/internal/router"
)

// APIDeps contains dependencies for API routes
type APIDeps struct {
	PostcodeHandler *api.PostcodeHandler
	AddressHandler  *api.AddressHandler

	// MaxBodyBytes caps request bodies; zero means the middleware default.
	MaxBodyBytes int64

	// RateLimit is applied to every API route when non-nil.
	RateLimit router.Middleware
}
