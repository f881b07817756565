package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
	"github.com/webtor-io/video-feed/models"
)

const (
	CacheExpireFlag = "thumbnail-cache-expire"
	JPEGQuality     = 85
	maxSourceSize   = 20 << 20
	errorExpire     = 10 * time.Second
)

// Widths are the sizes cards and the related list ask for.
var Widths = []int{160, 320, 640}

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   CacheExpireFlag,
			Usage:  "resized thumbnail cache expiration",
			Value:  time.Hour,
			EnvVar: "THUMBNAIL_CACHE_EXPIRE",
		},
	)
}

// Resizer downloads remote thumbnails and scales them to one of Widths.
type Resizer struct {
	cl    *http.Client
	cache *lazymap.LazyMap[[]byte]
}

func New(c *cli.Context, cl *http.Client) *Resizer {
	return NewResizer(cl, c.Duration(CacheExpireFlag))
}

func NewResizer(cl *http.Client, expire time.Duration) *Resizer {
	return &Resizer{
		cl: cl,
		cache: lazymap.New[[]byte](&lazymap.Config{
			Expire:      expire,
			ErrorExpire: errorExpire,
			StoreErrors: true,
		}),
	}
}

func AllowedWidth(w int) bool {
	for _, a := range Widths {
		if a == w {
			return true
		}
	}
	return false
}

// Resizable reports whether u points at a remote image we can fetch.
func Resizable(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// Local reports whether u is a path on this site.
func Local(u string) bool {
	return strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") && !strings.HasPrefix(u, "/\\")
}

// Proxied reports whether v's thumbnail goes through the resizing endpoint.
// Only catalog records do; thumbnails of videos added in a browser are
// loaded by that browser directly and never fetched by the server.
func Proxied(v models.Video) bool {
	return v.AddedAt.IsZero() && Resizable(v.Thumbnail)
}

// URL is where a page loads v's thumbnail from at width.
func URL(v models.Video, width int) string {
	if !Proxied(v) || !AllowedWidth(width) {
		return v.Thumbnail
	}
	return fmt.Sprintf("/thumb/%v/%v.jpg", url.PathEscape(v.ID), width)
}

// Get returns a JPEG of the image at u scaled to width, keeping aspect
// ratio.
func (s *Resizer) Get(ctx context.Context, u string, width int) ([]byte, error) {
	if !AllowedWidth(width) {
		return nil, errors.Errorf("wrong width %v", width)
	}
	if !Resizable(u) {
		return nil, errors.Errorf("unsupported thumbnail url %v", u)
	}
	return s.cache.Get(fmt.Sprintf("%v/%v", width, u), func() ([]byte, error) {
		return s.resize(ctx, u, width)
	})
}

func (s *Resizer) resize(ctx context.Context, u string, width int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch thumbnail %v", u)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to fetch thumbnail %v: status %v", u, resp.StatusCode)
	}
	src, err := imaging.Decode(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode thumbnail")
	}
	resized := imaging.Resize(src, width, 0, imaging.Lanczos)
	var buf bytes.Buffer
	err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode thumbnail")
	}
	return buf.Bytes(), nil
}
