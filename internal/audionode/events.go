package audionode

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arqon/groovebot/internal/music"
)

// EventHandler consumes playback events pushed by the node.
type EventHandler interface {
	HandleTrackStart(guildID string, track music.Track, recommended bool)
	HandleTrackEnd(guildID string)
}

// EventSocket holds the node's event websocket open and dispatches decoded
// events to the handler. It reconnects with backoff until closed.
type EventSocket struct {
	url      string
	password string
	handler  EventHandler

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	done   chan struct{}
}

func NewEventSocket(host, password string, handler EventHandler) *EventSocket {
	wsURL := strings.TrimRight(host, "/")
	wsURL = strings.TrimPrefix(wsURL, "http://")
	wsURL = strings.TrimPrefix(wsURL, "https://")
	return &EventSocket{
		url:      "ws://" + wsURL + "/v1/events",
		password: password,
		handler:  handler,
		done:     make(chan struct{}),
	}
}

func (s *EventSocket) Start() {
	go s.run()
}

func (s *EventSocket) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	conn := s.conn
	s.mu.Unlock()

	close(s.done)
	if conn != nil {
		_ = conn.Close()
	}
}

func (s *EventSocket) run() {
	backoff := 200 * time.Millisecond
	const maxBackoff = 30 * time.Second

	for {
		select {
		case <-s.done:
			return
		default:
		}

		header := http.Header{}
		if s.password != "" {
			header.Set("Authorization", s.password)
		}

		conn, _, err := websocket.DefaultDialer.Dial(s.url, header)
		if err != nil {
			log.Printf("audio node event socket dial failed: %v", err)
			select {
			case <-s.done:
				return
			case <-time.After(backoff):
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		backoff = 200 * time.Millisecond
		s.readLoop(conn)
	}
}

func (s *EventSocket) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed {
				log.Printf("audio node event socket read failed: %v", err)
			}
			return
		}

		var event nodeEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("audio node event decode failed: %v", err)
			continue
		}
		if event.GuildID == "" {
			continue
		}

		switch event.Op {
		case opTrackStart:
			recommended := event.Original != nil && event.Original.Recommended
			s.handler.HandleTrackStart(event.GuildID, event.Track.toTrack(), recommended)
		case opTrackEnd:
			s.handler.HandleTrackEnd(event.GuildID)
		}
	}
}

const (
	opTrackStart = "trackStart"
	opTrackEnd   = "trackEnd"
)

type nodeEvent struct {
	Op       string    `json:"op"`
	GuildID  string    `json:"guildId"`
	Track    wireTrack `json:"track"`
	Original *struct {
		Recommended bool `json:"recommended"`
	} `json:"original"`
}
