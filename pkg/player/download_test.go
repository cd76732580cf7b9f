package player

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-vidview/vidview/pkg/geometry"
	"github.com/go-vidview/vidview/pkg/media"
	"github.com/go-vidview/vidview/pkg/scene"
	"github.com/go-vidview/vidview/pkg/scenetest"
)

func TestPlayer_DownloadSavesFile(t *testing.T) {
	payload := []byte("not really an mp4")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	cfg := NewConfig(320, 240, srv.URL+"/v/clip.mp4")
	cfg.DownloadDir = t.TempDir()
	p, err := New(cfg)
	require.NoError(t, err)

	p.runDownload()

	got, err := os.ReadFile(filepath.Join(cfg.DownloadDir, "clip.mp4"))
	require.NoError(t, err, "download did not land in the configured directory")
	assert.Equal(t, payload, got)
}

func TestPlayer_DownloadFallsBackToOpenURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	var opened []string
	cfg := NewConfig(320, 240, srv.URL+"/v/clip.mp4")
	cfg.DownloadDir = t.TempDir()
	cfg.OpenURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	p, err := New(cfg)
	require.NoError(t, err)

	p.runDownload()

	assert.Equal(t, []string{cfg.Src}, opened, "failed fetch must fall back to the direct link")
	entries, err := os.ReadDir(cfg.DownloadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed fetch left a file behind")
}

func TestDownloadName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/v/clip.mp4", "clip.mp4"},
		{"https://cdn.example.com/v/clip.mp4?tok=1#t=30", "clip.mp4"},
		{"https://cdn.example.com/v/", "v"},
		{"https://cdn.example.com", "cdn.example.com"},
		{"", "download"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, downloadName(tc.url), "url %q", tc.url)
	}
}

func TestPlayer_PosterShownUntilFirstFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	h := scenetest.NewHarness(t)
	element := media.NewScripted()
	cfg := NewConfig(320, 240, "clip.mp4")
	cfg.Poster = srv.URL + "/poster.png"
	cfg.NewElement = func(string) media.Element { return element }

	p, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(p.Destroy)
	root := scene.NewContainer(geometry.Size{Width: 320, Height: 240})
	require.NoError(t, p.Attach(root))

	// The poster is fetched off the frame loop and lands as a dispatch.
	require.Eventually(t, scene.HasPendingDispatch, 5*time.Second, 5*time.Millisecond,
		"poster fetch never reached the dispatch queue")
	h.Pump()

	poster := p.view.poster
	require.True(t, poster.Visible(), "poster hidden before the first frame")
	require.NotNil(t, poster.Image())

	element.EmitLoaded(10*time.Second, 64, 48)
	element.EmitFrame(testFrame(64, 48), 0)
	h.Pump()
	assert.False(t, poster.Visible(), "poster still shown after the first frame")
}

func TestFetchImage_LocalFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := fetchImage(context.Background(), http.DefaultClient, path)
	require.NoError(t, err, "bare filesystem path")
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	img, err = fetchImage(context.Background(), http.DefaultClient, "file://"+path)
	require.NoError(t, err, "file scheme")
	require.NotNil(t, img)
}

func TestPlayer_PosterFromLocalFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	h := scenetest.NewHarness(t)
	element := media.NewScripted()
	cfg := NewConfig(320, 240, "clip.mp4")
	cfg.Poster = path
	cfg.NewElement = func(string) media.Element { return element }

	p, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(p.Destroy)
	root := scene.NewContainer(geometry.Size{Width: 320, Height: 240})
	require.NoError(t, p.Attach(root))

	require.Eventually(t, scene.HasPendingDispatch, 5*time.Second, 5*time.Millisecond,
		"local poster never reached the dispatch queue")
	h.Pump()

	require.True(t, p.view.poster.Visible(), "poster from a local path not shown")
	require.NotNil(t, p.view.poster.Image())
}

func TestPlayer_DestroyCancelsDownload(t *testing.T) {
	started := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-r.Context().Done()
	}))
	defer srv.Close()

	var opened []string
	cfg := NewConfig(320, 240, srv.URL+"/v/clip.mp4")
	cfg.DownloadDir = t.TempDir()
	cfg.OpenURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	p, err := New(cfg)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		p.runDownload()
		close(done)
	}()

	<-started
	p.Destroy()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("destroy did not abort the in-flight download")
	}
	assert.Empty(t, opened, "destroyed player opened the fallback link")
	entries, err := os.ReadDir(cfg.DownloadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "aborted download left a file behind")
}
