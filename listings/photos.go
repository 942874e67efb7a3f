package listings

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"venuproj/filemgr"
	"venuproj/models"
	"venuproj/utils"
)

// ensureMainPhoto enforces the media invariant: exactly one main photo
// whenever the list is non-empty.
func ensureMainPhoto(photos []models.Photo) []models.Photo {
	if len(photos) == 0 {
		return photos
	}

	mainIdx := -1
	for i := range photos {
		if !photos[i].IsMain {
			continue
		}
		if mainIdx == -1 {
			mainIdx = i
		} else {
			photos[i].IsMain = false
		}
	}
	if mainIdx == -1 {
		photos[0].IsMain = true
	}
	return photos
}

// setMainPhoto marks one photo main and clears the rest.
func setMainPhoto(photos []models.Photo, photoID string) ([]models.Photo, bool) {
	found := false
	for i := range photos {
		if photos[i].PhotoID == photoID {
			photos[i].IsMain = true
			found = true
		} else {
			photos[i].IsMain = false
		}
	}
	return photos, found
}

func removePhoto(photos []models.Photo, photoID string) ([]models.Photo, bool) {
	kept := make([]models.Photo, 0, len(photos))
	found := false
	for _, p := range photos {
		if p.PhotoID == photoID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	return ensureMainPhoto(kept), found
}

// AddListingPhotos appends uploaded photos to the listing in upload
// order. The first photo ever uploaded becomes the main photo.
func AddListingPhotos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	// Find the listing before anything touches disk, so an unknown id
	// leaves no orphaned uploads behind.
	ctx := r.Context()
	collection := listingStore.Load(ctx, hostID)
	idx := -1
	for i := range collection {
		if collection[i].ListingID == listingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		utils.Error(w, http.StatusNotFound, "Listing not found")
		return
	}

	names, err := filemgr.SaveFormFiles(r.MultipartForm, "photos", filemgr.EntityListing, filemgr.PicPhoto)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "photo upload failed: "+err.Error())
		return
	}
	if len(names) == 0 {
		utils.Error(w, http.StatusBadRequest, "no photos uploaded")
		return
	}

	for _, name := range names {
		photo := models.Photo{
			PhotoID: utils.GenerateRandomString(14),
			URL:     "/static/uploads/listing/photo/" + name,
		}
		if thumb, err := filemgr.CreateThumb(filemgr.EntityListing, name, 300, 200); err == nil {
			photo.Thumb = "/static/uploads/listing/thumb/" + thumb
		} else {
			log.Printf("thumbnail failed for %s: %v", name, err)
		}
		collection[idx].Photos = append(collection[idx].Photos, photo)
	}
	collection[idx].Photos = ensureMainPhoto(collection[idx].Photos)

	if err := listingStore.SaveAll(ctx, hostID, collection); err != nil {
		http.Error(w, "Error saving photos", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, collection[idx].Photos)
}

func DeleteListingPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")
	photoID := ps.ByName("photoid")

	ctx := r.Context()
	collection := listingStore.Load(ctx, hostID)
	for i := range collection {
		if collection[i].ListingID != listingID {
			continue
		}

		photos, found := removePhoto(collection[i].Photos, photoID)
		if !found {
			utils.Error(w, http.StatusNotFound, "Photo not found")
			return
		}
		collection[i].Photos = photos

		if err := listingStore.SaveAll(ctx, hostID, collection); err != nil {
			http.Error(w, "Error deleting photo", http.StatusInternalServerError)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, collection[i].Photos)
		return
	}
	utils.Error(w, http.StatusNotFound, "Listing not found")
}

func SetMainListingPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID, ok := hostFromRequest(w, r)
	if !ok {
		return
	}
	listingID := ps.ByName("listingid")
	photoID := ps.ByName("photoid")

	ctx := r.Context()
	collection := listingStore.Load(ctx, hostID)
	for i := range collection {
		if collection[i].ListingID != listingID {
			continue
		}

		photos, found := setMainPhoto(collection[i].Photos, photoID)
		if !found {
			utils.Error(w, http.StatusNotFound, "Photo not found")
			return
		}
		collection[i].Photos = photos

		if err := listingStore.SaveAll(ctx, hostID, collection); err != nil {
			http.Error(w, "Error updating photo", http.StatusInternalServerError)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, collection[i].Photos)
		return
	}
	utils.Error(w, http.StatusNotFound, "Listing not found")
}
