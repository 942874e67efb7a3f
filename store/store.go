// Package store persists a host's listing collection as a single document,
// replaced whole on every write. Readers always see a complete collection;
// concurrent writers race with last-write-wins.
package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venuproj/models"
	"venuproj/mq"
	"venuproj/rdx"
)

type Store struct {
	coll *mongo.Collection
}

func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// Load returns every listing the host owns. A missing or undecodable
// document is treated as "no listings yet": callers never see an error
// from a read.
func (s *Store) Load(ctx context.Context, hostID string) []models.Listing {
	var doc models.HostListingCollection
	err := s.coll.FindOne(ctx, bson.M{"_id": hostID}).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("listing collection unreadable for host %s: %v", hostID, err)
		}
		return []models.Listing{}
	}

	out := make([]models.Listing, 0, len(doc.Listings))
	for _, l := range doc.Listings {
		out = append(out, MigrateListing(l))
	}
	return out
}

// SaveAll replaces the host's whole collection, then notifies observers.
// The write completes before the event is emitted.
func (s *Store) SaveAll(ctx context.Context, hostID string, listings []models.Listing) error {
	doc := models.HostListingCollection{
		HostID:    hostID,
		Listings:  listings,
		UpdatedAt: time.Now(),
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": hostID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}

	if _, err := rdx.RdxDel("host_listings:" + hostID); err != nil {
		log.Printf("Cache deletion failed for host %s: %v", hostID, err)
	}
	go mq.Emit(context.Background(), "listing-collection-changed", models.Index{
		EntityType: "hostlistings",
		EntityId:   hostID,
		Method:     "PUT",
	})

	return nil
}
