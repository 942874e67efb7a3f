package listings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"venuproj/db"
	"venuproj/models"
	"venuproj/status"
	"venuproj/utils"
)

// RelistListing makes an unlisted or paused listing visible again.
func RelistListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	if err := machine.Relist(r.Context(), hostID, listingID); err != nil {
		respondStatusErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": models.StatusListed})
}

type unlistRequest struct {
	Reasons []string `json:"reasons"`
}

// UnlistListing hides the listing indefinitely. Feedback reasons are
// recorded separately and never affect state.
func UnlistListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	var req unlistRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	for _, reason := range req.Reasons {
		if !models.ValidUnlistReason(reason) {
			utils.Error(w, http.StatusBadRequest, "unknown unlist reason: "+reason)
			return
		}
	}

	if err := machine.UnlistNow(r.Context(), hostID, listingID); err != nil {
		respondStatusErr(w, err)
		return
	}

	if len(req.Reasons) > 0 {
		feedback := models.UnlistFeedback{
			FeedbackID: utils.GetUUID(),
			HostID:     hostID,
			ListingID:  listingID,
			Reasons:    req.Reasons,
			CreatedAt:  time.Now(),
		}
		if _, err := db.UnlistFeedbackCollection.InsertOne(context.TODO(), feedback); err != nil {
			log.Printf("failed to record unlist feedback for %s: %v", listingID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": models.StatusUnlisted})
}

type pauseRequest struct {
	From  string `json:"from"`
	Until string `json:"until"`
}

// PauseListing schedules an unlist window. The listing pauses while
// today falls inside [from, until] and relists itself afterwards.
func PauseListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "from must be a date in YYYY-MM-DD form")
		return
	}
	until, err := time.Parse("2006-01-02", req.Until)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "until must be a date in YYYY-MM-DD form")
		return
	}

	if err := machine.PauseForDateRange(r.Context(), hostID, listingID, from, until); err != nil {
		respondStatusErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":       models.StatusUnlisted,
		"unlist_from":  req.From,
		"unlist_until": req.Until,
	})
}

func respondStatusErr(w http.ResponseWriter, err error) {
	switch err {
	case status.ErrNotFound:
		utils.Error(w, http.StatusNotFound, "Listing not found")
	case status.ErrInvalidRange, status.ErrRangeInPast:
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		http.Error(w, "Error updating listing status", http.StatusInternalServerError)
	}
}
