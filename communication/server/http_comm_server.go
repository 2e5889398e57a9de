package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"penguins/communication"
	"penguins/game"
	"penguins/meta"
)

type ServerCommunicator struct {
	gameState   *game.GameState
	ended       bool
	actions     chan communication.Action
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader
	subscribers map[*websocket.Conn]*sync.Mutex
	subMutex    sync.Mutex
}

// NewServerCommunicator initializes and returns a new ServerCommunicator.
func NewServerCommunicator() *ServerCommunicator {
	return &ServerCommunicator{
		actions: make(chan communication.Action, meta.ACTION_QUEUE),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subscribers: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (sc *ServerCommunicator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/getGameState", sc.handleGetGameState)
	mux.HandleFunc("/updateGameState", sc.handleUpdateGameState)
	mux.HandleFunc("/sendAction", sc.handleSendAction)
	mux.HandleFunc("/receiveAction", sc.handleReceiveAction)
	mux.HandleFunc("/stream", sc.handleStream)
	return mux
}

// Start serves the communicator on addr until the context is cancelled.
func (sc *ServerCommunicator) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: sc.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("serving game")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sc.closeSubscribers()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (sc *ServerCommunicator) current() (*game.GameState, bool) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.gameState, sc.ended
}

func snapshot(gs *game.GameState, ended bool) communication.Snapshot {
	s := communication.NewSnapshot(gs)
	s.GameOver = s.GameOver || ended
	return s
}

func (sc *ServerCommunicator) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	gs, ended := sc.current()
	if gs == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, snapshot(gs, ended))
}

func (sc *ServerCommunicator) handleUpdateGameState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var s communication.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, over, err := s.Decode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if over {
		sc.EndGame(r.Context(), gs)
	} else {
		sc.UpdateGameState(r.Context(), gs)
	}
	w.WriteHeader(http.StatusOK)
}

func (sc *ServerCommunicator) handleSendAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var action communication.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, ended := sc.current()
	if ended {
		http.Error(w, "game is over", http.StatusConflict)
		return
	}
	if gs != nil && !gs.IsValidMove(action.Move()) {
		log.Warn().Stringer("move", action.Move()).Int("turn", gs.Turn).Msg("rejected action")
		http.Error(w, fmt.Sprintf("%v is not a legal move", action.Move()), http.StatusConflict)
		return
	}
	select {
	case sc.actions <- action:
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "action queue full", http.StatusServiceUnavailable)
	}
}

func (sc *ServerCommunicator) handleReceiveAction(w http.ResponseWriter, r *http.Request) {
	select {
	case action := <-sc.actions:
		writeJSON(w, action)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (sc *ServerCommunicator) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := sc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	lock := &sync.Mutex{}
	sc.subMutex.Lock()
	sc.subscribers[conn] = lock
	sc.subMutex.Unlock()
	log.Debug().Str("remote", r.RemoteAddr).Msg("subscriber connected")

	if gs, ended := sc.current(); gs != nil {
		sc.send(conn, lock, snapshot(gs, ended))
	}

	// Drain until the peer goes away so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sc.drop(conn)
				return
			}
		}
	}()
}

func (sc *ServerCommunicator) send(conn *websocket.Conn, lock *sync.Mutex, s communication.Snapshot) {
	lock.Lock()
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	err := conn.WriteJSON(s)
	lock.Unlock()
	if err != nil {
		log.Debug().Err(err).Msg("dropping subscriber")
		sc.drop(conn)
	}
}

func (sc *ServerCommunicator) drop(conn *websocket.Conn) {
	sc.subMutex.Lock()
	defer sc.subMutex.Unlock()
	if _, ok := sc.subscribers[conn]; ok {
		delete(sc.subscribers, conn)
		conn.Close()
	}
}

func (sc *ServerCommunicator) broadcast(s communication.Snapshot) {
	sc.subMutex.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(sc.subscribers))
	for conn, lock := range sc.subscribers {
		conns[conn] = lock
	}
	sc.subMutex.Unlock()
	for conn, lock := range conns {
		sc.send(conn, lock, s)
	}
}

func (sc *ServerCommunicator) closeSubscribers() {
	sc.subMutex.Lock()
	defer sc.subMutex.Unlock()
	for conn, lock := range sc.subscribers {
		lock.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		lock.Unlock()
		conn.Close()
		delete(sc.subscribers, conn)
	}
}

// GetGameState returns the published state. Once the game has ended the
// final state comes with ErrGameOver.
func (sc *ServerCommunicator) GetGameState(ctx context.Context) (*game.GameState, error) {
	gs, ended := sc.current()
	switch {
	case gs == nil:
		return nil, communication.ErrNoGameState
	case ended || gs.IsOver():
		return gs, communication.ErrGameOver
	}
	return gs, nil
}

// UpdateGameState publishes gs and pushes it to every stream subscriber.
// Game states are immutable so the pointer is shared.
func (sc *ServerCommunicator) UpdateGameState(ctx context.Context, gs *game.GameState) error {
	return sc.publish(gs, false)
}

// EndGame publishes gs as final. Actions sent afterwards are rejected.
func (sc *ServerCommunicator) EndGame(ctx context.Context, gs *game.GameState) error {
	return sc.publish(gs, true)
}

func (sc *ServerCommunicator) publish(gs *game.GameState, ended bool) error {
	sc.mutex.Lock()
	sc.gameState = gs
	sc.ended = ended
	sc.mutex.Unlock()
	sc.broadcast(snapshot(gs, ended))
	return nil
}

func (sc *ServerCommunicator) SendAction(ctx context.Context, action communication.Action) error {
	select {
	case sc.actions <- action:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReceiveAction blocks until an action is queued.
func (sc *ServerCommunicator) ReceiveAction(ctx context.Context) (communication.Action, error) {
	select {
	case action := <-sc.actions:
		return action, nil
	case <-ctx.Done():
		return communication.Action{}, ctx.Err()
	}
}
