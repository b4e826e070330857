package flyer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sync"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// probeConcurrency bounds how many image fetches run at once, so a page of
// dead URLs costs one probe window, not one per URL.
const probeConcurrency = 4

// ImageProber pre-flights remote product and theme images. Every URL gets a
// bounded load-or-fail window; an image that neither loads nor errors in
// time is treated as failed and left out of the capture, so a hung fetch
// can never stall rasterization.
type ImageProber struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewImageProber() *ImageProber {
	return &ImageProber{
		Client:  &http.Client{},
		Timeout: ImageProbeTimeout,
	}
}

// Fetch loads and decodes one image within the probe timeout.
func (p *ImageProber) Fetch(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FetchAll probes every image referenced by the sale's products and theme,
// concurrently and once per unique URL. Failures are logged and omitted; the
// renderer shows placeholders for them.
func (p *ImageProber) FetchAll(ctx context.Context, products []models.SaleProduct, theme *models.Theme) map[string]image.Image {
	seen := make(map[string]struct{})
	urls := make([]string, 0, len(products)+1)
	collect := func(url string) {
		if url == "" {
			return
		}
		if _, done := seen[url]; done {
			return
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}

	for i := range products {
		if products[i].ProductImage.Valid {
			collect(products[i].ProductImage.String)
		}
	}
	if theme != nil && theme.HeaderImageURL.Valid {
		collect(theme.HeaderImageURL.String)
	}

	var (
		mu     sync.Mutex
		images = make(map[string]image.Image)
		egp    = new(errgroup.Group)
		sem    = make(chan struct{}, probeConcurrency)
	)
	for _, url := range urls {
		url := url
		egp.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			img, err := p.Fetch(ctx, url)
			if err != nil {
				logrus.Warnf("flyer: hiding image %s: %v", url, err)
				return nil
			}
			mu.Lock()
			images[url] = img
			mu.Unlock()
			return nil
		})
	}
	_ = egp.Wait()
	return images
}
