package listings

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"venuproj/db"
	"venuproj/models"
	"venuproj/rdx"
	"venuproj/status"
	"venuproj/store"
	"venuproj/utils"
)

// hasAnyOccasion reports whether the listing carries at least one of the
// requested occasions.
func hasAnyOccasion(listingOccasions, wanted []string) bool {
	for _, o := range wanted {
		if utils.Contains(listingOccasions, o) {
			return true
		}
	}
	return false
}

// GetVenues is the guest-facing browse endpoint: every listing across all
// hosts that is effectively listed today, optionally filtered by one or
// more comma-separated occasions.
func GetVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	occasions := utils.SplitTags(r.URL.Query().Get("occasion"))

	if len(occasions) == 0 {
		if cached, _ := rdx.RdxGet("venues"); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	hosts, err := utils.FindAndDecode[models.HostListingCollection](ctx, db.ListingsCollection, bson.M{})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}

	today := time.Now()
	venues := []models.Listing{}
	for _, h := range hosts {
		for _, l := range h.Listings {
			l = store.MigrateListing(l)
			state, _ := status.Derive(l, today)
			if state != status.Listed {
				continue
			}
			if len(occasions) > 0 && !hasAnyOccasion(l.Occasions, occasions) {
				continue
			}
			l.EffectiveStatus = string(state)
			venues = append(venues, l)
		}
	}

	data := utils.ToJSON(venues)
	if len(occasions) == 0 {
		rdx.RdxSet("venues", string(data))
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GetVenue returns one publicly visible listing by id.
func GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("listingid")

	l, err := findPublicListing(r.Context(), listingID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Venue not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, l)
}

// findPublicListing locates a listing across host collections and checks
// it is effectively listed today.
func findPublicListing(ctx context.Context, listingID string) (models.Listing, error) {
	var host models.HostListingCollection
	err := db.ListingsCollection.FindOne(ctx, bson.M{"listings.listingid": listingID}).Decode(&host)
	if err != nil {
		return models.Listing{}, err
	}

	today := time.Now()
	for _, l := range host.Listings {
		if l.ListingID != listingID {
			continue
		}
		l = store.MigrateListing(l)
		state, _ := status.Derive(l, today)
		if state != status.Listed {
			break
		}
		l.EffectiveStatus = string(state)
		return l, nil
	}
	return models.Listing{}, mongo.ErrNoDocuments
}
