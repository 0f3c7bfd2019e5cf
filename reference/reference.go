package reference

import (
	"errors"
	"regexp"
	"strings"

	"github.com/truemediaorg/reelrelay/model"
)

var (
	// captures the short code out of an Instagram post, reel or IGTV URL
	postURLPattern   = regexp.MustCompile(`^https?://(?:www\.)?instagram\.com/(?:[\w.]+/)?(?:p|reels?|tv)/(?P<Shortcode>[\w-]+)`)
	numericIDPattern = regexp.MustCompile(`^\d+(?:_\d+)?$`)
	shortcodePattern = regexp.MustCompile(`^[\w-]+$`)
)

// Takes in a URL and extracts the post short code if it's an Instagram URL.
func DeconstructPostURL(postURL string) (string, error) {
	matches := postURLPattern.FindStringSubmatch(postURL)
	if matches == nil {
		return "", errors.New("not an instagram post URL")
	}
	return matches[1], nil
}

// Classify reports how a reference was written, plus the short code when one
// can be read off it. The reference itself is never rewritten; the provider
// accepts codes, ids and URLs as-is.
func Classify(ref string) (model.ReferenceKind, string) {
	ref = strings.TrimSpace(ref)
	if shortcode, err := DeconstructPostURL(ref); err == nil {
		return model.ReferenceKindURL, shortcode
	}
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return model.ReferenceKindURL, ""
	case numericIDPattern.MatchString(ref):
		return model.ReferenceKindNumericID, ""
	case shortcodePattern.MatchString(ref):
		return model.ReferenceKindShortcode, ref
	default:
		return model.ReferenceKindUnknown, ""
	}
}
