package validator

import (
	"net/url"
	"path"
	"slices"
	"strings"
)

const (
	pictureURLMaxLen = 2048
	filenameMaxLen   = 255
)

var (
	imageExtensions   = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	imageContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

const invalidExtensionMessage = "Invalid file extension. Only .jpg, .jpeg, .png, .gif, and .webp are allowed."

// PictureURL requires an absolute http(s) URL pointing at an image file.
func PictureURL(field, value string) []Rule {
	u, parseErr := url.Parse(value)

	return []Rule{
		{
			Check: func() bool {
				return parseErr == nil && u.IsAbs() && u.Host != "" &&
					(u.Scheme == "http" || u.Scheme == "https")
			},
			Error: ValidationError{Field: field, Message: "Invalid picture URL. Must be HTTP or HTTPS."},
		},
		{
			Check: func() bool {
				return hasImageExtension(strings.ToLower(u.Path))
			},
			Error: ValidationError{Field: field, Message: invalidExtensionMessage},
		},
		{
			Check: func() bool {
				return len(value) <= pictureURLMaxLen
			},
			Error: ValidationError{Field: field, Message: "Picture URL must be less than 2048 characters."},
		},
	}
}

// ImageFilename requires an image extension and a name of at most 255 characters.
func ImageFilename(field, value string) []Rule {
	return []Rule{
		{
			Check: func() bool {
				return slices.Contains(imageExtensions, strings.ToLower(path.Ext(value)))
			},
			Error: ValidationError{Field: field, Message: invalidExtensionMessage},
		},
		{
			Check: func() bool {
				return len(value) <= filenameMaxLen
			},
			Error: ValidationError{Field: field, Message: "Filename must be less than 255 characters."},
		},
	}
}

func ImageContentType(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(imageContentTypes, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.",
		},
	}
}

func hasImageExtension(p string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
