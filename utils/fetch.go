package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// FetchFile downloads a remote resource and returns its raw bytes.
// The request is attempted exactly once; retry policies belong to the caller.
func FetchFile(uri string) ([]byte, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download the file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download the file from URI %s: status %v", uri, res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	return data, nil
}

// FetchImage downloads an image file and verifies its MIME type before
// handing the bytes back to the caller.
func FetchImage(uri string) ([]byte, error) {
	data, err := FetchFile(uri)
	if err != nil {
		return nil, err
	}

	// Only the first 512 bytes are used to sniff the content type.
	n := Min(len(data), 512)
	ctype := http.DetectContentType(data[:n])
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("the downloaded file is not a valid image type: %s", ctype)
	}
	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
