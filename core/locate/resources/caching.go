package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/schuko/gconf"
)

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the global configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	appkey := gconf.GetString("app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		tracer().Errorf("application key is not set")
		return "", core.Error(core.EINVALID, "configuration key app-key not set")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EIO, "no cache directory available")
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	if _, err = os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", core.WrapError(err, core.EIO, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
