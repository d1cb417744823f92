package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Downloader streams remote PDF assets into a local directory, reporting
// fractional progress along the way. Retries restart from zero; there is no
// resumption of partial downloads.
type Downloader struct {
	Client *http.Client
	Dir    string

	mu   sync.Mutex
	busy map[string]bool
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{
		Client: &http.Client{Timeout: 5 * time.Minute},
		Dir:    dir,
		busy:   map[string]bool{},
	}
}

// SanitizeTitle turns a book title into a stable file name.
func SanitizeTitle(title string) string {
	s := strings.ReplaceAll(title, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}

// Path is where the asset for a title lives once fetched.
func (d *Downloader) Path(title string) string {
	return filepath.Join(d.Dir, SanitizeTitle(title)+".pdf")
}

func (d *Downloader) Exists(title string) bool {
	_, err := os.Stat(d.Path(title))
	return err == nil
}

// Fetch downloads the asset for title, overwriting any previous copy. While
// streaming it calls onProgress with (written, expected); expected is -1 when
// the server sends no length. A second Fetch for the same title while one is
// running fails with ErrDownloadBusy. On any failure the partial file is
// discarded and the previous copy, if any, is left in place.
func (d *Downloader) Fetch(ctx context.Context, rawURL, title string, onProgress func(written, expected int64)) (string, error) {
	d.mu.Lock()
	if d.busy[title] {
		d.mu.Unlock()
		return "", ErrDownloadBusy
	}
	d.busy[title] = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.busy, title)
		d.mu.Unlock()
	}()

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrDownloadFailed, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(d.Dir, ".download-*")
	if err != nil {
		return "", err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name()) // no-op after successful rename
	}()

	expected := resp.ContentLength
	var written int64
	buf := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := tmp.Write(buf[:n]); werr != nil {
				return "", fmt.Errorf("%w: %v", ErrDownloadFailed, werr)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, expected)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", fmt.Errorf("%w: %v", ErrDownloadFailed, rerr)
		}
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	dst := d.Path(title)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return dst, nil
}
