package listings

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"venuproj/models"
	"venuproj/utils"
)

func publicVenueURL(listingID string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/venues/%s", base, listingID)
}

// ListingQR serves a QR code PNG pointing at the listing's public page.
func ListingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("listingid")

	if _, err := findPublicListing(r.Context(), listingID); err != nil {
		utils.Error(w, http.StatusNotFound, "Venue not found")
		return
	}

	png, err := qrcode.Encode(publicVenueURL(listingID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// ListingSheet renders a one-page printable PDF of the host's listing:
// the details a host pins up at the venue, plus a share QR.
func ListingSheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	var listing *models.Listing
	for _, l := range listingStore.Load(r.Context(), hostID) {
		if l.ListingID == listingID {
			listing = &l
			break
		}
	}
	if listing == nil {
		utils.Error(w, http.StatusNotFound, "Listing not found")
		return
	}

	png, err := qrcode.Encode(publicVenueURL(listingID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, listing.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	loc := listing.Location
	pdf.CellFormat(0, 7, fmt.Sprintf("%s, %s, %s", loc.Street, loc.City, loc.Country), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Rate: %d (%s)", listing.Pricing.Rate, listing.Pricing.RateType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Guests: "+listing.GuestRange, "", 1, "L", false, 0, "")
	if len(listing.Occasions) > 0 {
		pdf.CellFormat(0, 7, "Occasions: "+strings.Join(listing.Occasions, ", "), "", 1, "L", false, 0, "")
	}
	if len(listing.Amenities) > 0 {
		pdf.MultiCell(0, 7, "Amenities: "+strings.Join(listing.Amenities, ", "), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, listing.Description, "", "L", false)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("share-qr", 150, 230, 40, 40, false, opts, 0, "")
	pdf.SetXY(150, 271)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(40, 5, "Scan to view this venue", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", listingID))
	w.Write(buf.Bytes())
}
