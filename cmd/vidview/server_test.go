package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBroadcaster_PublishReachesSubscriber(t *testing.T) {
	b := newBroadcaster()
	sub, release := b.subscribe()
	defer release()

	b.publish([]byte("frame-1"))

	select {
	case got := <-sub:
		if string(got) != "frame-1" {
			t.Errorf("got %q, want frame-1", got)
		}
	default:
		t.Fatal("subscriber did not receive the published frame")
	}
}

func TestBroadcaster_SlowSubscriberDropsFrames(t *testing.T) {
	b := newBroadcaster()
	sub, release := b.subscribe()
	defer release()

	b.publish([]byte("frame-1"))
	b.publish([]byte("frame-2")) // must not block with a full channel

	if got := <-sub; string(got) != "frame-1" {
		t.Errorf("got %q, want frame-1", got)
	}
	if got := b.snapshot(); string(got) != "frame-2" {
		t.Errorf("snapshot = %q, want frame-2", got)
	}
}

func TestBroadcaster_PublishCopiesFrame(t *testing.T) {
	b := newBroadcaster()
	buf := []byte("frame-1")
	b.publish(buf)
	copy(buf, "XXXXXXX")

	if got := b.snapshot(); string(got) != "frame-1" {
		t.Errorf("snapshot = %q, want frame-1 (publish must copy)", got)
	}
}

func TestPreviewRouter_Snapshot(t *testing.T) {
	frames := newBroadcaster()
	router := previewRouter(frames)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.jpg", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status before any frame = %d, want 404", rec.Code)
	}

	frames.publish([]byte("jpegbytes"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.jpg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), []byte("jpegbytes")) {
		t.Errorf("body = %q, want the published frame", rec.Body.Bytes())
	}
}

func TestPreviewRouter_Index(t *testing.T) {
	router := previewRouter(newBroadcaster())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`src="/stream"`)) {
		t.Error("index page does not embed the stream")
	}
}
