package app

import (
	"encoding/json"
	"net/http"

	"github.com/frudas24/overlaydot/internal/gesture"
)

// RegisterRoutes wires API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", a.handleState)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
}

type stateResponse struct {
	InputEnabled   bool         `json:"inputEnabled"`
	Expanded       bool         `json:"expanded"`
	ClickThrough   bool         `json:"clickThrough"`
	RelayConnected bool         `json:"relayConnected"`
	RelayDropped   uint64       `json:"relayDropped"`
	Mounted        bool         `json:"mounted"`
	Gesture        gestureState `json:"gesture"`
}

type gestureState struct {
	Dragging     bool    `json:"dragging"`
	StartWindowX float64 `json:"startWindowX"`
	StartWindowY float64 `json:"startWindowY"`
}

// dropCounter is implemented by relays that count discarded messages.
type dropCounter interface {
	Dropped() uint64
}

// handleState returns the overlay session and gesture state.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		InputEnabled:   snap.InputEnabled,
		Expanded:       snap.Expanded,
		ClickThrough:   snap.ClickThrough,
		RelayConnected: snap.RelayConnected,
		Mounted:        a.dot.Mounted(),
		Gesture:        buildGestureState(a.dot.State()),
	}
	if dc, ok := a.relay.(dropCounter); ok {
		resp.RelayDropped = dc.Dropped()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// buildGestureState summarizes the dot's gesture for the API.
func buildGestureState(g gesture.GestureState) gestureState {
	return gestureState{
		Dragging:     g.Dragging,
		StartWindowX: g.StartWindowX,
		StartWindowY: g.StartWindowY,
	}
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
