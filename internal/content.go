package internal

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// ContentSource fetches article bodies by their manifest locator
type ContentSource interface {
	Open(ctx context.Context, locator string) ([]byte, error)
}

// NewContentSource picks a source for root: the built-in articles when
// root is empty, HTTP when it is a URL, a local directory otherwise.
// Absolute URLs in locators are always fetched over HTTP.
func NewContentSource(root string) (ContentSource, error) {
	web := NewHTTPContent(nil)
	switch {
	case root == "":
		return &contentRouter{primary: NewFSContent(DefaultContent()), web: web}, nil
	case isURL(root):
		base, err := url.Parse(strings.TrimSuffix(root, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid content URL: %w", err)
		}
		return &contentRouter{primary: NewHTTPContent(base), web: web}, nil
	default:
		info, err := os.Stat(root)
		if err != nil {
			return nil, &StorageError{Path: root, Op: "open", Err: err}
		}
		if !info.IsDir() {
			return nil, &StorageError{Path: root, Op: "open", Err: fmt.Errorf("not a directory")}
		}
		return &contentRouter{primary: NewFSContent(os.DirFS(root)), web: web}, nil
	}
}

type contentRouter struct {
	primary ContentSource
	web     *HTTPContent
}

func (r *contentRouter) Open(ctx context.Context, locator string) ([]byte, error) {
	if isURL(locator) {
		return r.web.Open(ctx, locator)
	}
	return r.primary.Open(ctx, locator)
}

// FSContent reads articles from an fs.FS
type FSContent struct {
	fsys fs.FS
}

// NewFSContent creates an FSContent
func NewFSContent(fsys fs.FS) *FSContent {
	return &FSContent{fsys: fsys}
}

// Open reads locator relative to the root of the filesystem. Leading "./"
// and "/" are ignored; the path cannot climb out of the root.
func (c *FSContent) Open(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(locator, "./")), "/")
	if name == "" {
		return nil, &NotFoundError{What: "File", Name: locator}
	}
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{What: "File", Name: locator}
		}
		return nil, &StorageError{Path: name, Op: "read", Err: err}
	}
	return data, nil
}

// HTTPContent fetches articles over HTTP
type HTTPContent struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPContent creates an HTTPContent. Relative locators resolve against
// base; with a nil base only absolute URLs work.
func NewHTTPContent(base *url.URL) *HTTPContent {
	return &HTTPContent{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const maxContentSize = 8 << 20

// Open issues a GET for locator
func (c *HTTPContent) Open(ctx context.Context, locator string) ([]byte, error) {
	target, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("invalid locator %q: %w", locator, err)
	}
	if !target.IsAbs() {
		if c.base == nil {
			return nil, &NotFoundError{What: "File", Name: locator}
		}
		target = c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(target.Path, "/")})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{What: "File", Name: locator}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", target, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxContentSize))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
