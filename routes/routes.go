package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"venuproj/listings"
	"venuproj/middleware"
	"venuproj/models"
	"venuproj/ratelim"
	"venuproj/utils"
	"venuproj/ws"
)

// AddListingRoutes registers the host-facing editor surface.
func AddListingRoutes(router *httprouter.Router) {
	router.POST("/api/listings", middleware.Authenticate(listings.CreateListing))
	router.GET("/api/listings", middleware.Authenticate(listings.GetMyListings))
	router.GET("/api/listings/:listingid", middleware.Authenticate(listings.GetListing))
	router.PUT("/api/listings/:listingid", middleware.Authenticate(listings.EditListing))
	router.DELETE("/api/listings/:listingid", middleware.Authenticate(listings.DeleteListing))

	router.POST("/api/listings/:listingid/relist", middleware.Authenticate(listings.RelistListing))
	router.POST("/api/listings/:listingid/unlist", middleware.Authenticate(listings.UnlistListing))
	router.POST("/api/listings/:listingid/pause", middleware.Authenticate(listings.PauseListing))

	router.GET("/api/listings/:listingid/calendar", middleware.Authenticate(listings.GetListingCalendar))

	router.POST("/api/listings/:listingid/photos", middleware.Authenticate(listings.AddListingPhotos))
	router.DELETE("/api/listings/:listingid/photos/:photoid", middleware.Authenticate(listings.DeleteListingPhoto))
	router.PUT("/api/listings/:listingid/photos/:photoid/main", middleware.Authenticate(listings.SetMainListingPhoto))

	router.GET("/api/listings/:listingid/sheet", middleware.Authenticate(listings.ListingSheet))
}

// AddVenueRoutes registers the guest-facing browse surface.
func AddVenueRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/venues", rateLimiter.Limit(middleware.OptionalAuth(listings.GetVenues)))
	router.GET("/api/venues/:listingid", rateLimiter.Limit(middleware.OptionalAuth(listings.GetVenue)))
	router.GET("/api/venues/:listingid/qr", rateLimiter.Limit(listings.ListingQR))
}

// AddWSRoutes registers the change-notification socket. The handler does
// its own token check so query-param tokens work for browser clients.
func AddWSRoutes(router *httprouter.Router) {
	router.GET("/ws/listings/:hostid", ws.HandleListingsWS)
}

// AddVocabRoutes serves the fixed vocabularies the editor renders.
func AddVocabRoutes(router *httprouter.Router) {
	router.GET("/api/vocab", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"occasions":      models.Occasions,
			"amenities":      models.Amenities,
			"accessibility":  models.AccessibilityFeatures,
			"guest_ranges":   models.GuestRanges,
			"rate_types":     models.RateTypes,
			"property_types": models.PropertyTypes,
			"unlist_reasons": models.UnlistReasons,
		})
	})
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
}
