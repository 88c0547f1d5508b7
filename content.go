package openrouter

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dataURIPrefix = "data:image/"

// imageMIMETypes is the extension allow-list for local image files. A path
// whose extension is missing from this table is rejected before any I/O.
var imageMIMETypes = map[string]string{
	"jpg":  "image/jpg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"svg":  "image/svg+xml",
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image_url content part. detail may be empty, or one
// of DetailAuto, DetailLow, DetailHigh.
func ImagePart(url string, detail string) ContentPart {
	return ContentPart{
		Type:     "image_url",
		ImageURL: &ImageURL{URL: url, Detail: detail},
	}
}

// NormalizePart prepares a single content part for upload. Parts that are
// not image_url pass through unchanged. Image URLs that already carry a
// data:image/ payload pass through with detail defaulted to auto; any other
// URL is treated as a local file path, read, and inlined as a base64 data
// URI.
func (c *Client) NormalizePart(part ContentPart) (ContentPart, error) {
	if part.Type != "image_url" || part.ImageURL == nil {
		return part, nil
	}

	img := *part.ImageURL
	if img.Detail == "" {
		img.Detail = DetailAuto
	}

	if !strings.HasPrefix(img.URL, dataURIPrefix) {
		uri, err := c.encodeImageFile(img.URL)
		if err != nil {
			return ContentPart{}, err
		}
		img.URL = uri
	}

	part.ImageURL = &img
	return part, nil
}

func (c *Client) encodeImageFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &InvalidInputError{Message: fmt.Sprintf("File not found: %s", path)}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	mimeType, ok := imageMIMETypes[ext]
	if !ok {
		return "", &InvalidInputError{Message: fmt.Sprintf("Unsupported image format: %s", ext)}
	}

	if c.imageCache != nil {
		if uri, ok := c.imageCache.Get(path); ok {
			return uri, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &EncodingError{Path: path, Err: err}
	}

	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	if c.imageCache != nil {
		c.imageCache.Add(path, uri)
	}

	return uri, nil
}

// normalizeMessages maps every content part of every multimodal message
// through NormalizePart. Messages with plain string content, and content
// slice elements that are not ContentPart values, pass through untouched.
// Message order and names are preserved.
func (c *Client) normalizeMessages(msgs []Message) ([]Message, error) {
	out := make([]Message, len(msgs))
	for i, msg := range msgs {
		switch content := msg.Content.(type) {
		case []ContentPart:
			parts := make([]ContentPart, len(content))
			for j, part := range content {
				normalized, err := c.NormalizePart(part)
				if err != nil {
					return nil, err
				}
				parts[j] = normalized
			}
			msg.Content = parts
		case []any:
			parts := make([]any, len(content))
			for j, elem := range content {
				switch part := elem.(type) {
				case ContentPart:
					normalized, err := c.NormalizePart(part)
					if err != nil {
						return nil, err
					}
					parts[j] = normalized
				case *ContentPart:
					normalized, err := c.NormalizePart(*part)
					if err != nil {
						return nil, err
					}
					parts[j] = normalized
				default:
					parts[j] = elem
				}
			}
			msg.Content = parts
		}
		out[i] = msg
	}
	return out, nil
}
