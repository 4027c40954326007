// Package nuget fetches packages from a NuGet v3 flat container feed and
// extracts assemblies from the downloaded .nupkg archives.
package nuget

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hosmod/hosmod/internal/debug"
)

// DefaultBaseURL is the public flat container endpoint.
const DefaultBaseURL = "https://api.nuget.org/v3-flatcontainer"

// DefaultPreferredTargets orders lib/ target directories from most to least preferred.
var DefaultPreferredTargets = []string{"lib/net48/", "lib/net472/", "lib/net452/"}

// FeedError reports a failed feed request, naming the URL.
type FeedError struct {
	URL   string
	Cause error
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	return fmt.Sprintf("feed request %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *FeedError) Unwrap() error {
	return e.Cause
}

// Client talks to a flat container feed.
type Client struct {
	// HTTPClient performs requests.
	HTTPClient *http.Client
	// BaseURL is the flat container root, without trailing slash.
	BaseURL string
}

// NewClient creates a Client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type versionIndex struct {
	Versions []string `json:"versions"`
}

// IndexURL returns the version index URL of packageID.
func (c *Client) IndexURL(packageID string) string {
	return fmt.Sprintf("%s/%s/index.json", c.BaseURL, strings.ToLower(packageID))
}

// PackageURL returns the .nupkg URL of packageID at version.
func (c *Client) PackageURL(packageID, version string) string {
	id := strings.ToLower(packageID)
	v := strings.ToLower(version)
	return fmt.Sprintf("%s/%s/%s/%s.%s.nupkg", c.BaseURL, id, v, id, v)
}

// LatestVersion returns the last version listed in the package index.
func (c *Client) LatestVersion(ctx context.Context, packageID string) (string, error) {
	url := c.IndexURL(packageID)
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}

	var index versionIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return "", &FeedError{URL: url, Cause: fmt.Errorf("invalid version index: %w", err)}
	}
	if len(index.Versions) == 0 {
		return "", &FeedError{URL: url, Cause: fmt.Errorf("no versions returned for %s", packageID)}
	}

	latest := index.Versions[len(index.Versions)-1]
	debug.Debug("[nuget] %s: %d versions, latest %s", packageID, len(index.Versions), latest)
	return latest, nil
}

// Download returns the raw .nupkg bytes of packageID at version.
func (c *Client) Download(ctx context.Context, packageID, version string) ([]byte, error) {
	return c.get(ctx, c.PackageURL(packageID, version))
}

// FetchLatestAssembly downloads the latest packageID and returns its version
// and the bytes of the assembly named fileName, chosen by SelectEntry.
func (c *Client) FetchLatestAssembly(ctx context.Context, packageID, fileName string) (string, []byte, error) {
	version, err := c.LatestVersion(ctx, packageID)
	if err != nil {
		return "", nil, err
	}

	pkg, err := c.Download(ctx, packageID, version)
	if err != nil {
		return "", nil, err
	}

	data, err := ExtractAssembly(pkg, fileName, DefaultPreferredTargets)
	if err != nil {
		return "", nil, fmt.Errorf("%s %s: %w", packageID, version, err)
	}
	return version, data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	debug.Debug("[nuget] GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FeedError{URL: url, Cause: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FeedError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FeedError{URL: url, Cause: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{URL: url, Cause: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

// ExtractAssembly opens a .nupkg archive and returns the content of the
// entry SelectEntry picks for fileName.
func ExtractAssembly(pkg []byte, fileName string, preferred []string) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return nil, fmt.Errorf("invalid package archive: %w", err)
	}

	names := make([]string, 0, len(archive.File))
	byName := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		names = append(names, f.Name)
		byName[f.Name] = f
	}

	selected, ok := SelectEntry(names, fileName, preferred)
	if !ok {
		return nil, fmt.Errorf("package did not contain %s", fileName)
	}
	debug.Debug("[nuget] Selected archive entry %s", selected)

	rc, err := byName[selected].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", selected, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// SelectEntry picks the archive entry under lib/ whose name ends with
// fileName (case-insensitive). Entries are ranked by the index of the first
// preferred marker they contain (entries matching none rank last), then by
// path length; ties keep archive order.
func SelectEntry(names []string, fileName string, preferred []string) (string, bool) {
	suffix := strings.ToLower(fileName)

	var candidates []string
	for _, name := range names {
		if strings.HasPrefix(name, "lib/") && strings.HasSuffix(strings.ToLower(name), suffix) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	rank := func(name string) int {
		lower := strings.ToLower(name)
		for i, marker := range preferred {
			if strings.Contains(lower, marker) {
				return i
			}
		}
		return len(preferred)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i]), rank(candidates[j])
		if ri != rj {
			return ri < rj
		}
		return len(candidates[i]) < len(candidates[j])
	})
	return candidates[0], true
}
