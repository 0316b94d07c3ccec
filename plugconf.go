package plugconf

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/nextpkg/plugconf/ce"
	"github.com/nextpkg/plugconf/document"
	"github.com/nextpkg/plugconf/repository"
)

// Configure applies an already-parsed configuration document to repo. Plugin
// failures are contained and logged; an already-parsed tree has no base
// parse step left to fail, so no error is returned. A nil repo targets the
// process default repository.
func Configure(root *document.Node, repo repository.Repository) {
	NewConfigurator().Configure(root, repo)
}

// ConfigureFile parses the named configuration file and applies it to repo.
// Parse failures propagate; plugin failures are contained and logged. A nil
// repo targets the process default repository.
func ConfigureFile(path string, repo repository.Repository) error {
	root, err := document.ParseFile(path)
	if err != nil {
		return NewParseError(path, "failed to parse configuration file", err)
	}

	Configure(root, repo)
	return nil
}

// ConfigureURL fetches a configuration document from rawURL (http, https or
// file scheme) and applies it to repo. Fetch and parse failures propagate;
// plugin failures are contained and logged. A nil repo targets the process
// default repository.
func ConfigureURL(rawURL string, repo repository.Repository) error {
	root, err := fetchAndParse(rawURL)
	if err != nil {
		return err
	}

	Configure(root, repo)
	return nil
}

func fetchAndParse(rawURL string) (*document.Node, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewFetchError(rawURL, "invalid configuration URL", err)
	}

	switch u.Scheme {
	case "file":
		root, err := document.ParseFile(u.Path)
		if err != nil {
			return nil, NewParseError(rawURL, "failed to parse configuration file", err)
		}
		return root, nil

	case "http", "https":
		resp, err := http.Get(rawURL)
		if err != nil {
			return nil, NewFetchError(rawURL, "failed to fetch configuration", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, NewFetchError(rawURL, "failed to fetch configuration",
				fmt.Errorf("%w: unexpected status %s", ce.ErrFetchFailed, resp.Status))
		}

		root, err := document.Parse(resp.Body)
		if err != nil {
			return nil, NewParseError(rawURL, "failed to parse configuration document", err)
		}
		return root, nil

	default:
		return nil, NewFetchError(rawURL, "unsupported configuration URL scheme",
			fmt.Errorf("%w: scheme %q", ce.ErrFetchFailed, u.Scheme))
	}
}
