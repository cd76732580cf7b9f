package player

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/go-vidview/vidview/pkg/scene"
)

// posterTimeout bounds the poster fetch. The widget works without a
// poster; a source that never responds must not pin the fetch goroutine.
const posterTimeout = 30 * time.Second

// runDownload fetches Src into DownloadDir. When the direct fetch fails
// the player falls back to opening the source URL in the host environment,
// so the viewer always keeps a download path. It runs off the frame loop;
// Destroy aborts the transfer.
func (p *Player) runDownload() {
	dest, err := fetchToDir(p.ctx, p.client, p.cfg.Src, p.cfg.DownloadDir)
	if err == nil {
		p.log.Info().Str("path", dest).Msg("download saved")
		return
	}
	p.log.Debug().Err(err).Msg("direct download failed")
	if p.ctx.Err() != nil || p.cfg.OpenURL == nil {
		return
	}
	if err := p.cfg.OpenURL(p.cfg.Src); err != nil {
		p.log.Debug().Err(err).Msg("open url failed")
	}
}

// loadPoster fetches the poster off the frame loop and hands the decoded
// image back through the dispatch queue. A poster that arrives after the
// first video frame is discarded.
func (p *Player) loadPoster(src string) {
	ctx, cancel := context.WithTimeout(p.ctx, posterTimeout)
	defer cancel()
	img, err := fetchImage(ctx, p.client, src)
	if err != nil {
		p.log.Debug().Str("url", src).Err(err).Msg("poster fetch failed")
		return
	}
	scene.Dispatch(func() {
		if p.destroyed || p.status != StatusEmpty {
			return
		}
		p.view.poster.SetImage(img)
		p.view.poster.SetVisible(true)
	})
}

// fetchToDir downloads url into dir, naming the file after the last path
// segment. An empty dir means the system temp directory. It returns the
// path of the saved file.
func fetchToDir(ctx context.Context, client *http.Client, url, dir string) (string, error) {
	resp, err := httpGet(ctx, client, url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	if dir == "" {
		dir = os.TempDir()
	}
	dest := filepath.Join(dir, downloadName(url))
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("save %s: %w", dest, err)
	}
	return dest, nil
}

// downloadName derives a file name from the URL's last path segment,
// ignoring any query or fragment.
func downloadName(url string) string {
	name := url
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = path.Base(strings.TrimRight(name, "/"))
	if name == "." || name == "/" || name == "" {
		return "download"
	}
	return name
}

// fetchImage loads and decodes an image from an HTTP URL, a file:// URL or
// a bare filesystem path. The blank decoder imports in this package
// register PNG, JPEG, BMP and WebP.
func fetchImage(ctx context.Context, client *http.Client, src string) (image.Image, error) {
	if local, ok := localPath(src); ok {
		f, err := os.Open(local)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", local, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", local, err)
		}
		return img, nil
	}
	resp, err := httpGet(ctx, client, src)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

// localPath reports whether src names a local file rather than a network
// resource, stripping the file:// scheme when present.
func localPath(src string) (string, bool) {
	if strings.HasPrefix(src, "file://") {
		return strings.TrimPrefix(src, "file://"), true
	}
	if strings.Contains(src, "://") {
		return "", false
	}
	return src, true
}

// httpGet issues a GET bound to ctx, so the owning player's Destroy
// abandons the transfer.
func httpGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
