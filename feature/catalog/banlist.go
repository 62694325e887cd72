package catalog

import (
	"context"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Banlist fetches the TCG and OCG banlists concurrently and merges them by
// card id. The OCG response is authoritative for ban_ocg. Only cards carrying
// banlist information are returned, TCG order first.
func (c *Client) Banlist(ctx context.Context) ([]Record, error) {
	var tcg, ocg []Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tcg, err = c.collect(gctx, "tcg")
		return err
	})
	g.Go(func() error {
		var err error
		ocg, err = c.collect(gctx, "ocg")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := MergeBanlists(tcg, ocg)
	c.logger.Info("Fetched banlists",
		zap.Int("tcg", len(tcg)),
		zap.Int("ocg", len(ocg)),
		zap.Int("merged", len(merged)),
	)
	return merged, nil
}

func (c *Client) collect(ctx context.Context, format string) ([]Record, error) {
	var out []Record
	for rec, err := range c.stream(ctx, c.endpoint(url.Values{"banlist": {format}})) {
		if IsRecordError(err) {
			c.logger.Warn("Skipping malformed banlist record", zap.String("format", format), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		if rec.Valid() && rec.BanlistInfo != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

// MergeBanlists combines the per-format responses by card id.
func MergeBanlists(tcg, ocg []Record) []Record {
	merged := make([]Record, 0, len(tcg)+len(ocg))
	index := make(map[int]int, len(tcg))

	for _, rec := range tcg {
		if rec.BanlistInfo == nil {
			continue
		}
		info := *rec.BanlistInfo
		rec.BanlistInfo = &info
		index[rec.ID] = len(merged)
		merged = append(merged, rec)
	}

	for _, rec := range ocg {
		if rec.BanlistInfo == nil {
			continue
		}
		if i, ok := index[rec.ID]; ok {
			merged[i].BanlistInfo.OCG = rec.BanlistInfo.OCG
			continue
		}
		info := *rec.BanlistInfo
		rec.BanlistInfo = &info
		index[rec.ID] = len(merged)
		merged = append(merged, rec)
	}

	return merged
}
