package imagefetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register webp decoder

	"github.com/dixieflatline76/Nekofetch/pkg/provider"
	"github.com/dixieflatline76/Nekofetch/util/log"
)

var contentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Downloader saves fetched images to disk and checks that they decode.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a Downloader. A nil client gets a client with a 60 second timeout.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Downloader{client: client}
}

// Save downloads img into dir and returns the file path.
func (d *Downloader) Save(ctx context.Context, img provider.Image, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", DesktopUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", img.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPStatusError{URL: img.URL, Code: resp.StatusCode}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}
	dest, err := safeJoin(dir, fileName(img, resp.Header.Get("Content-Type")))
	if err != nil {
		return "", err
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	_, copyErr := io.Copy(f, io.LimitReader(resp.Body, maxImageSize))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(dest)
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", fmt.Errorf("failed to write %s: %w", dest, copyErr)
	}

	decoded, err := imaging.Open(dest)
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("downloaded file from %s is not a valid image: %w", img.URL, err)
	}
	log.Debugf("Saved %s (%dx%d) to %s", img.URL, decoded.Bounds().Dx(), decoded.Bounds().Dy(), dest)
	return dest, nil
}

// fileName derives a file name from the URL, falling back to a random one.
func fileName(img provider.Image, contentType string) string {
	base := ""
	if u, err := url.Parse(img.URL); err == nil {
		base = path.Base(u.Path)
	}
	if base == "" || base == "." || base == "/" {
		base = uuid.NewString()
	}
	if path.Ext(base) == "" {
		base += extFor(contentType)
	}
	if img.Source != "" {
		base = string(img.Source) + "_" + base
	}
	return base
}

func extFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".img"
	}
	if ext, ok := contentTypeExt[mediaType]; ok {
		return ext
	}
	return ".img"
}

// safeJoin joins dir and name, refusing results outside dir.
func safeJoin(dir, name string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(root, name)
	if !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("refusing to write outside %s: %q", root, name)
	}
	return dest, nil
}
