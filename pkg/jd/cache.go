package jd

import (
	"os"

	"github.com/pkg/errors"
)

// ErrNoCache indicates no cached job context exists yet. Fatal when the run
// was started without a URL to refresh it.
var ErrNoCache = errors.New("no cached job context")

// CacheFilename is the job-context cache file name inside the workspace.
const CacheFilename = "jd.txt"

// ReadCache loads a previously cached job context.
func ReadCache(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrNoCache, "%s", path)
			return content, err
		}
		err = errors.Wrapf(err, "failed to read job context cache: %s", path)
		return content, err
	}

	content = string(data)
	if content == "" {
		err = errors.Errorf("job context cache is empty: %s", path)
		return content, err
	}

	return content, err
}

// WriteCache persists the job context, overwriting any existing cache.
func WriteCache(path, content string) (err error) {
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write job context cache: %s", path)
		return err
	}
	return err
}
