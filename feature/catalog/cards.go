package catalog

import (
	"context"
	"iter"
	"net/url"

	"go.uber.org/zap"
)

// Cards returns a lazy sequence of the catalog's cards. Every iteration
// re-fetches from the remote API. Translations for the configured languages
// are fetched up front (unless skipped) and attached to each record.
//
// A *RecordError marks one entry that could not be decoded and the sequence
// continues after it. Any other error ends the sequence. Records without an id
// or a name are skipped with a warning.
func (c *Client) Cards(ctx context.Context, filter Filter) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		var translations map[string]map[int]Translation
		if !filter.SkipTranslations {
			var err error
			translations, err = c.Translations(ctx, filter.CardSet)
			if err != nil {
				yield(Record{}, err)
				return
			}
		}

		for rec, err := range c.stream(ctx, c.endpoint(cardParams(filter.CardSet, ""))) {
			if IsRecordError(err) {
				if !yield(Record{}, err) {
					return
				}
				continue
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !rec.Valid() {
				c.logger.Warn("Skipping invalid card record", zap.Int("id", rec.ID), zap.String("name", rec.Name))
				continue
			}

			for lang, byID := range translations {
				tr, ok := byID[rec.ID]
				if !ok {
					continue
				}
				if rec.Translations == nil {
					rec.Translations = make(map[string]Translation, len(translations))
				}
				rec.Translations[lang] = tr
			}

			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Translations fetches the localized catalog for every configured language,
// keyed by language then card id.
func (c *Client) Translations(ctx context.Context, cardSet string) (map[string]map[int]Translation, error) {
	out := make(map[string]map[int]Translation, len(c.cfg.Languages))

	for _, lang := range c.cfg.Languages {
		if lang == "" || lang == "en" {
			continue
		}

		byID := make(map[int]Translation)
		for rec, err := range c.stream(ctx, c.endpoint(cardParams(cardSet, lang))) {
			if IsRecordError(err) {
				c.logger.Warn("Skipping malformed translation", zap.String("language", lang), zap.Error(err))
				continue
			}
			if err != nil {
				return nil, err
			}
			if !rec.Valid() {
				continue
			}
			byID[rec.ID] = Translation{Language: lang, Name: rec.Name, Description: rec.Desc}
		}

		c.logger.Info("Fetched translations", zap.String("language", lang), zap.Int("count", len(byID)))
		out[lang] = byID
	}

	return out, nil
}

func cardParams(cardSet, language string) url.Values {
	params := url.Values{}
	if cardSet != "" {
		params.Set("cardset", cardSet)
	}
	if language != "" {
		params.Set("language", language)
	}
	return params
}
