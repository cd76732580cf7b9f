package main

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const indexPage = `<!doctype html>
<title>vidview preview</title>
<body style="margin:0;background:#111;display:grid;place-items:center;height:100vh">
<img src="/stream" alt="player preview">
</body>
`

// broadcaster fans the newest encoded frame out to stream subscribers.
// Slow subscribers drop frames instead of stalling the frame loop.
type broadcaster struct {
	mu   sync.Mutex
	last []byte
	subs map[chan []byte]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan []byte]struct{})}
}

// publish stores a copy of frame and offers it to every subscriber.
func (b *broadcaster) publish(frame []byte) {
	copied := append([]byte(nil), frame...)
	b.mu.Lock()
	b.last = copied
	for ch := range b.subs {
		select {
		case ch <- copied:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *broadcaster) subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
}

func (b *broadcaster) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func previewRouter(frames *broadcaster) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, indexPage)
	})
	r.Get("/stream", serveStream(frames))
	r.Get("/frame.jpg", serveSnapshot(frames))

	return r
}

// serveStream writes an endless multipart MJPEG response, one part per
// published frame, until the client disconnects.
func serveStream(frames *broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sub, release := frames.subscribe()
		defer release()

		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		flusher, _ := w.(http.Flusher)
		for {
			select {
			case <-req.Context().Done():
				return
			case frame := <-sub:
				if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
					return
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				if _, err := io.WriteString(w, "\r\n"); err != nil {
					return
				}
				if flusher != nil {
					flusher.Flush()
				}
			}
		}
	}
}

func serveSnapshot(frames *broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		frame := frames.snapshot()
		if frame == nil {
			http.Error(w, "no frame yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(frame)
	}
}
