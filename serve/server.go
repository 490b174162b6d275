// Package serve streams a loaded map to websocket clients in chunks, using
// the stream encoder so the full encoded buffer never has to materialize.
package serve

import (
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voxelsplace/vxl/vxl"
)

type Server struct {
	m         *vxl.Map
	chunkSize int
	log       *log.Logger

	// A map supports one stream at a time; concurrent downloads take turns.
	mu sync.Mutex

	upgrader websocket.Upgrader
}

func NewServer(m *vxl.Map, chunkSize int, logger *log.Logger) *Server {
	return &Server{
		m:         m,
		chunkSize: chunkSize,
		log:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades each request to a websocket and sends the encoded map as
// a sequence of binary messages of at most chunkSize bytes, followed by one
// closing text message "done".
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if err := s.sendMap(conn); err != nil {
			s.log.Printf("stream to %s aborted: %v", conn.RemoteAddr(), err)
			return
		}
		s.log.Printf("map streamed to %s", conn.RemoteAddr())
	}
}

func (s *Server) sendMap(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, err := vxl.NewStream(s.m, s.chunkSize)
	if err != nil {
		return err
	}
	defer stream.Close()

	buf := make([]byte, s.chunkSize)
	for {
		n, err := stream.Read(buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
			return err
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, []byte("done"))
}

// ListenAndServe serves the map on addr with the handler mounted at /map.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/map", s.Handler())
	s.log.Printf("serving map on %s/map", addr)
	return http.ListenAndServe(addr, mux)
}
