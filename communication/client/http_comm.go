package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"penguins/communication"
	"penguins/game"
)

type ClientCommunicator struct {
	serverURL string
	http      *http.Client
	dialer    websocket.Dialer
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
		dialer:    websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (cc *ClientCommunicator) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, cc.serverURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return cc.http.Do(req)
}

func statusError(resp *http.Response) error {
	out, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
}

func (cc *ClientCommunicator) GetGameState(ctx context.Context) (*game.GameState, error) {
	resp, err := cc.do(ctx, http.MethodGet, "/getGameState", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, communication.ErrNoGameState
	default:
		return nil, statusError(resp)
	}
	var s communication.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	gs, over, err := s.Decode()
	if err != nil {
		return nil, err
	}
	if over {
		return gs, communication.ErrGameOver
	}
	return gs, nil
}

func (cc *ClientCommunicator) UpdateGameState(ctx context.Context, gs *game.GameState) error {
	return cc.publish(ctx, communication.NewSnapshot(gs))
}

func (cc *ClientCommunicator) EndGame(ctx context.Context, gs *game.GameState) error {
	s := communication.NewSnapshot(gs)
	s.GameOver = true
	return cc.publish(ctx, s)
}

func (cc *ClientCommunicator) publish(ctx context.Context, s communication.Snapshot) error {
	resp, err := cc.do(ctx, http.MethodPost, "/updateGameState", s)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (cc *ClientCommunicator) SendAction(ctx context.Context, action communication.Action) error {
	resp, err := cc.do(ctx, http.MethodPost, "/sendAction", action)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%v: %w", action.Move(), game.ErrInvalidMove)
	}
	return statusError(resp)
}

func (cc *ClientCommunicator) ReceiveAction(ctx context.Context) (communication.Action, error) {
	resp, err := cc.do(ctx, http.MethodGet, "/receiveAction", nil)
	if err != nil {
		return communication.Action{}, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return communication.Action{}, communication.ErrNoAction
	default:
		return communication.Action{}, statusError(resp)
	}
	var action communication.Action
	if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
		return communication.Action{}, fmt.Errorf("decode action: %w", err)
	}
	return action, nil
}

// Subscribe streams every snapshot the server publishes to handle until the
// context is cancelled, the server closes the stream or handle returns an
// error. A closed stream is not an error.
func (cc *ClientCommunicator) Subscribe(ctx context.Context, handle func(communication.Snapshot) error) error {
	url := "ws" + strings.TrimPrefix(cc.serverURL, "http") + "/stream"
	conn, _, err := cc.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var s communication.Snapshot
		if err := conn.ReadJSON(&s); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Msg("snapshot stream closed by server")
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}
		if err := handle(s); err != nil {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return err
		}
	}
}
