package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"ygo-pipelines/core/retry"
)

// maxImageBytes guards against unexpectedly large responses.
const maxImageBytes = 16 << 20

// ImageURL returns the remote URL of a card image.
func (c *Client) ImageURL(id int, cropped bool) string {
	dir := "cards"
	if cropped {
		dir = "cards_cropped"
	}
	return fmt.Sprintf("%s/%s/%d.jpg", c.cfg.ImageBaseURL, dir, id)
}

// Image downloads a card image. The request and the body read are retried
// together on transient failures.
func (c *Client) Image(ctx context.Context, id int, cropped bool) ([]byte, error) {
	rawURL := c.ImageURL(id, cropped)

	timeout := time.Duration(c.cfg.ImageTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var data []byte
	err := retry.Do(ctx, c.retry, func(ctx context.Context, attempt int) error {
		body, cancel, err := c.open(ctx, rawURL, timeout, attempt)
		if err != nil {
			return err
		}
		defer cancel()
		if body == nil {
			return &FatalFetchError{URL: rawURL, Err: fmt.Errorf("image not found")}
		}
		defer body.Close()

		data, err = io.ReadAll(io.LimitReader(body, maxImageBytes+1))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &TransientFetchError{URL: rawURL, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(data) > maxImageBytes {
		return nil, &FatalFetchError{URL: rawURL, Err: fmt.Errorf("image exceeds %d bytes", maxImageBytes)}
	}
	if len(data) == 0 {
		return nil, &FatalFetchError{URL: rawURL, Err: fmt.Errorf("empty image body")}
	}
	return data, nil
}
