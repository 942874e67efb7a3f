package listings

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"venuproj/db"
	"venuproj/models"
	"venuproj/rdx"
	"venuproj/status"
	"venuproj/store"
	"venuproj/utils"
)

var (
	listingStore status.Store = store.New(db.ListingsCollection)
	machine                   = status.New(listingStore)
)

func hostFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		http.Error(w, "Invalid user", http.StatusUnauthorized)
		return "", false
	}
	return requestingUserID, true
}

// CreateListing publishes a new listing from the wizard. Status defaults
// to listed.
func CreateListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateListing(&listing); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	listing.ListingID = utils.GenerateRandomString(14)
	listing.HostID = hostID
	listing.Status = models.StatusListed
	listing.UnlistFrom = nil
	listing.UnlistUntil = nil
	listing.Photos = []models.Photo{}
	listing.CreatedAt = now
	listing.UpdatedAt = now

	ctx := r.Context()
	collection := listingStore.Load(ctx, hostID)
	collection = append(collection, listing)
	if err := listingStore.SaveAll(ctx, hostID, collection); err != nil {
		http.Error(w, "Error creating listing", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, listing)
}

// GetMyListings returns the host's collection with effective statuses
// resolved; expired pause windows are corrected in storage on the way.
func GetMyListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}

	cacheKey := "host_listings:" + hostID
	if cached, _ := rdx.RdxGet(cacheKey); cached != "" {
		// A pause window can expire while the cached copy is still
		// fresh; serve the cache only while no listing needs a
		// status correction.
		var cachedListings []models.Listing
		if json.Unmarshal([]byte(cached), &cachedListings) == nil &&
			!status.AnyStale(cachedListings, time.Now()) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	listings, err := machine.Resolve(r.Context(), hostID)
	if err != nil {
		http.Error(w, "Error loading listings", http.StatusInternalServerError)
		return
	}

	data := utils.ToJSON(listings)
	rdx.RdxSet(cacheKey, string(data))
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	listings, err := machine.Resolve(r.Context(), hostID)
	if err != nil {
		http.Error(w, "Error loading listings", http.StatusInternalServerError)
		return
	}
	for _, l := range listings {
		if l.ListingID == listingID {
			utils.RespondWithJSON(w, http.StatusOK, l)
			return
		}
	}
	utils.Error(w, http.StatusNotFound, "Listing not found")
}

// EditListing replaces the listing's editable fields. The record is
// rewritten whole; identity, photos, and visibility state are kept.
func EditListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	var payload models.Listing
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateListing(&payload); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	collection := listingStore.Load(ctx, hostID)
	for i := range collection {
		if collection[i].ListingID != listingID {
			continue
		}

		updated := payload
		updated.ListingID = collection[i].ListingID
		updated.HostID = collection[i].HostID
		updated.Status = collection[i].Status
		updated.UnlistFrom = collection[i].UnlistFrom
		updated.UnlistUntil = collection[i].UnlistUntil
		updated.Photos = collection[i].Photos
		updated.CreatedAt = collection[i].CreatedAt
		updated.UpdatedAt = time.Now()
		collection[i] = updated

		if err := listingStore.SaveAll(ctx, hostID, collection); err != nil {
			http.Error(w, "Error updating listing", http.StatusInternalServerError)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, updated)
		return
	}
	utils.Error(w, http.StatusNotFound, "Listing not found")
}

func DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	if err := machine.Remove(r.Context(), hostID, listingID); err != nil {
		if err == status.ErrNotFound {
			utils.Error(w, http.StatusNotFound, "Listing not found")
		} else {
			http.Error(w, "Error deleting listing", http.StatusInternalServerError)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  http.StatusOK,
		"message": "Listing deleted successfully",
	})
}
