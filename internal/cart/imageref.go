package cart

import (
	"net/url"
	"path"
	"strings"
)

// ImageExtensions lists the accepted suffixes for image references.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// ValidateImageRef parses raw as an absolute http(s) URL whose path ends in
// one of ImageExtensions. The extension match ignores case.
func ValidateImageRef(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, newValidationError(InvalidImageReference, "image", "is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		ve := newValidationError(InvalidImageReference, "image", "is not a URL")
		ve.Err = err
		return nil, ve
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, newValidationError(InvalidImageReference, "image", "must be an absolute http or https URL")
	}
	if u.Host == "" {
		return nil, newValidationError(InvalidImageReference, "image", "has no host")
	}

	ext := strings.ToLower(path.Ext(u.Path))
	for _, accepted := range ImageExtensions {
		if ext == accepted {
			return u, nil
		}
	}

	return nil, newValidationError(InvalidImageReference, "image", "does not end in an accepted image extension")
}
