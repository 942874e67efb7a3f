package listings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"venuproj/calendar"
	"venuproj/utils"
)

// GetListingCalendar returns the month price grid for a listing.
// Defaults to the current month when year/month are absent.
func GetListingCalendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "year must be a number")
			return
		}
		year = v
	}
	if mo := r.URL.Query().Get("month"); mo != "" {
		v, err := strconv.Atoi(mo)
		if err != nil || v < 1 || v > 12 {
			utils.Error(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		month = time.Month(v)
	}

	for _, l := range listingStore.Load(r.Context(), hostID) {
		if l.ListingID != listingID {
			continue
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"year":  year,
			"month": int(month),
			"days":  calendar.MonthGrid(year, month, l.Pricing.Rate, now),
		})
		return
	}
	utils.Error(w, http.StatusNotFound, "Listing not found")
}
