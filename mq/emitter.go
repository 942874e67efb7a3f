package mq

import (
	"context"
	"encoding/json"
	"log"

	"venuproj/models"
	"venuproj/rdx"
	"venuproj/ws"
)

const listingChannel = "listing-events"

// Emit publishes a listing change event to Redis. Callers fire it after
// the storage write has completed, so subscribers always re-read
// post-write state.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(map[string]any{
		"event":   eventName,
		"content": content,
	})
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), listingChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

type listingEvent struct {
	Event   string       `json:"event"`
	Content models.Index `json:"content"`
}

// StartListingWorker consumes listing change events: it drops the cached
// copies of the affected host's collection and tells every open view of
// that host to reload.
func StartListingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, listingChannel)
	ch := sub.Channel()

	log.Println("[ListingWorker] Listening for listing events...")

	for msg := range ch {
		var event listingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[ListingWorker] Failed to parse event: %v", err)
			continue
		}

		hostID := event.Content.EntityId
		if hostID == "" {
			continue
		}

		if _, err := rdx.RdxDel("host_listings:" + hostID); err != nil {
			log.Printf("[ListingWorker] Cache deletion failed for host %s: %v", hostID, err)
		}
		if _, err := rdx.RdxDel("venues"); err != nil {
			log.Printf("[ListingWorker] Browse cache deletion failed: %v", err)
		}

		ws.Broadcast(hostID, []byte(msg.Payload))
	}
}
