package relay

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/truemediaorg/reelrelay/model"
	"github.com/truemediaorg/reelrelay/provider"
)

var (
	errLookupNotOK = errors.New("provider status is not ok")
	errNoItems     = errors.New("provider returned no items")
	errNoVariants  = errors.New("first item has no video versions")
)

// SelectVariant picks the first video version of the first item. The provider
// lists versions best-first, so no re-ranking by dimensions happens here.
func SelectVariant(resp *provider.MediaInfoResponse) (model.MediaVariant, error) {
	if resp == nil || resp.Status != provider.StatusOK {
		return model.MediaVariant{}, newError(KindNoPlayableVariant, errLookupNotOK)
	}
	items := resp.Items()
	if len(items) == 0 {
		return model.MediaVariant{}, newError(KindNoPlayableVariant, errNoItems)
	}
	if len(items[0].Variants) == 0 {
		return model.MediaVariant{}, newError(KindNoPlayableVariant, errNoVariants)
	}
	variant := items[0].Variants[0]
	if err := checkVariantURL(variant.URL); err != nil {
		return model.MediaVariant{}, newError(KindNoPlayableVariant, err)
	}
	return variant, nil
}

func checkVariantURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("unparseable variant URL: %w", err)
	}
	if !u.IsAbs() || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("variant URL is not an absolute https URL: %q", raw)
	}
	return nil
}
