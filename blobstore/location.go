package blobstore

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsupportedScheme is returned for a location with an unknown scheme.
var ErrUnsupportedScheme = errors.New("blobstore: unsupported location scheme")

// Location is a parsed blob location.
//
//	/data/prost/sp.prdb               → file, Prefix "/data/prost", Name "sp.prdb"
//	file:///data/prost/sp.prdb        → same
//	s3://bucket/db/sp.prdb            → s3, Bucket "bucket", Prefix "db", Name "sp.prdb"
//	minio://host:9000/bucket/sp.prdb  → minio, Endpoint "host:9000", Bucket "bucket"
type Location struct {
	Scheme   string // "file", "s3" or "minio"
	Endpoint string // minio only
	Bucket   string
	Prefix   string // directory for file, key prefix otherwise
	Name     string // last path element
}

// ParseLocation splits a location string into the store it lives in and the
// blob name inside that store.
func ParseLocation(loc string) (Location, error) {
	if !strings.Contains(loc, "://") {
		return fileLocation(loc)
	}
	u, err := url.Parse(loc)
	if err != nil {
		return Location{}, fmt.Errorf("blobstore: parse location %q: %w", loc, err)
	}

	switch u.Scheme {
	case "file":
		return fileLocation(u.Host + u.Path)
	case "s3":
		if u.Host == "" {
			return Location{}, fmt.Errorf("blobstore: location %q has no bucket", loc)
		}
		dir, name := splitKey(u.Path)
		return Location{Scheme: "s3", Bucket: u.Host, Prefix: dir, Name: name}, nil
	case "minio":
		parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
		if u.Host == "" || parts[0] == "" {
			return Location{}, fmt.Errorf("blobstore: location %q needs endpoint and bucket", loc)
		}
		var key string
		if len(parts) == 2 {
			key = parts[1]
		}
		dir, name := splitKey(key)
		return Location{Scheme: "minio", Endpoint: u.Host, Bucket: parts[0], Prefix: dir, Name: name}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func fileLocation(p string) (Location, error) {
	if p == "" {
		return Location{}, errors.New("blobstore: empty location")
	}
	dir, name := filepath.Split(p)
	switch {
	case dir == "":
		dir = "."
	case len(dir) > 1:
		dir = strings.TrimSuffix(dir, string(filepath.Separator))
	}
	return Location{Scheme: "file", Prefix: dir, Name: name}, nil
}

func splitKey(key string) (dir, name string) {
	key = strings.TrimPrefix(key, "/")
	dir, name = path.Split(key)
	return strings.TrimSuffix(dir, "/"), name
}
