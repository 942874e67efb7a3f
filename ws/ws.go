package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"venuproj/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleListingsWS subscribes an open view to a host's collection-changed
// notifications. Only the host may subscribe to its own channel; browser
// clients that cannot set headers pass the token as a query param. The
// connection carries no client->server traffic; reads only detect
// disconnect.
func HandleListingsWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID := ps.ByName("hostid")

	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		if q := r.URL.Query().Get("token"); q != "" {
			tokenString = "Bearer " + q
		}
	}
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if claims.UserID != hostID {
		http.Error(w, "You are not authorized to watch this host", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[hostID] = append(subscribers[hostID], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[hostID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[hostID] = newList
	mu.Unlock()

	conn.Close()
}

// Broadcast pushes a payload to every view subscribed to the host.
func Broadcast(hostID string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[hostID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[hostID] = newList
}
