package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truemediaorg/reelrelay/model"
)

func TestDeconstructPostURL(t *testing.T) {
	t.Run("successfully parses post URLs", func(t *testing.T) {
		shortcode, err := DeconstructPostURL("https://www.instagram.com/p/C9xYz12AbCd/")
		assert.NoError(t, err)
		assert.Equal(t, "C9xYz12AbCd", shortcode)

		shortcode, err = DeconstructPostURL("http://instagram.com/p/C9xYz12AbCd")
		assert.NoError(t, err)
		assert.Equal(t, "C9xYz12AbCd", shortcode)
	})

	t.Run("successfully parses reel URLs", func(t *testing.T) {
		shortcode, err := DeconstructPostURL("https://www.instagram.com/reel/DA-b_c123/?igsh=abc")
		assert.NoError(t, err)
		assert.Equal(t, "DA-b_c123", shortcode)

		shortcode, err = DeconstructPostURL("https://instagram.com/reels/DA-b_c123/")
		assert.NoError(t, err)
		assert.Equal(t, "DA-b_c123", shortcode)

		shortcode, err = DeconstructPostURL("https://www.instagram.com/some.user/reel/DA-b_c123/")
		assert.NoError(t, err)
		assert.Equal(t, "DA-b_c123", shortcode)
	})

	t.Run("rejects non-Instagram URLs", func(t *testing.T) {
		shortcode, err := DeconstructPostURL("https://www.someotherwebsite.com/reel/foo")
		assert.Error(t, err)
		assert.Equal(t, "", shortcode)
	})
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		description string
		ref         string
		kind        model.ReferenceKind
		shortcode   string
	}{
		{"instagram reel URL", "https://www.instagram.com/reel/DA1bc23/", model.ReferenceKindURL, "DA1bc23"},
		{"other URL", "https://example.com/video/1", model.ReferenceKindURL, ""},
		{"numeric id", "3456789012345678901", model.ReferenceKindNumericID, ""},
		{"numeric id with owner suffix", "3456789012345678901_1234567", model.ReferenceKindNumericID, ""},
		{"bare short code", "DA1bc23", model.ReferenceKindShortcode, "DA1bc23"},
		{"surrounding whitespace is ignored", "  DA1bc23\n", model.ReferenceKindShortcode, "DA1bc23"},
		{"anything else", "not a reference!", model.ReferenceKindUnknown, ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			kind, shortcode := Classify(testCase.ref)
			assert.Equal(t, testCase.kind, kind)
			assert.Equal(t, testCase.shortcode, shortcode)
		})
	}
}
