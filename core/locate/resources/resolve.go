package resources

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/font"
	"github.com/npillmayer/schuko/gconf"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// IsFont is a predicate: does an asset key denote a font file?
func IsFont(key string) bool {
	switch strings.ToLower(path.Ext(key)) {
	case ".ttf", ".ttc", ".otf", ".otc":
		return true
	}
	return false
}

// DirStore resolves asset keys to files within a local asset directory.
type DirStore struct {
	root       string
	systemFont func(string) (string, error)
}

// NewDirStore creates an asset store for directory root. If root is empty,
// the directory is taken from configuration key "assets"; if this is unset
// as well, the current directory is used.
func NewDirStore(root string) *DirStore {
	if root == "" {
		root = gconf.GetString("assets")
	}
	if root == "" {
		root = "."
	}
	tracer().Debugf("asset directory is %s", root)
	return &DirStore{root: root, systemFont: findfont.Find}
}

// Root returns the asset directory.
func (s *DirStore) Root() string {
	return s.root
}

// Path resolves an asset key to the path of an existing file.
func (s *DirStore) Path(key string) (string, error) {
	if key == "" || !fs.ValidPath(key) {
		return "", core.Error(core.EINVALID, "invalid asset key %q", key)
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	fi, err := os.Stat(p)
	if err != nil || fi.IsDir() {
		return "", NotFound(key, unknownResourceType)
	}
	return p, nil
}

// Font resolves a font asset key to a face reference, selecting face index
// within a font collection. An empty key references the fallback font.
//
// Keys not present in the asset directory are searched for as system fonts.
func (s *DirStore) Font(key string, index int) (font.FaceRef, error) {
	if key == "" {
		return font.FaceRef{Index: index}, nil
	}
	p, err := s.Path(key)
	if err == nil {
		return font.FaceRef{Path: p, Index: index}, nil
	}
	if core.Code(err) == core.EINVALID {
		return font.FaceRef{}, err
	}
	if fpath, err := s.systemFont(path.Base(key)); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font: %s", key, fpath)
		return font.FaceRef{Path: fpath, Index: index}, nil
	}
	return font.FaceRef{}, NotFound(key, fontResourceType)
}

// Image loads and decodes an image asset. The orientation of JPEG images
// is corrected from their EXIF data.
func (s *DirStore) Image(key string) (image.Image, error) {
	p, err := s.Path(key)
	if err != nil {
		if core.Code(err) == core.EMISSING {
			err = NotFound(key, imageResourceType)
		}
		return nil, err
	}
	img, err := imaging.Open(p, imaging.AutoOrientation(true))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode image %s", key)
	}
	tracer().Debugf("loaded image %s (%v)", key, img.Bounds().Size())
	return img, nil
}

// --- Images ---------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ResolveImage loads an image asset in the background.
func (s *DirStore) ResolveImage(key string) ImagePromise {
	ch := make(chan imgPlusErr, 1)
	go func(ch chan<- imgPlusErr) {
		result := imgPlusErr{}
		result.img, result.err = s.Image(key)
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.img, r.err
			}
		},
	}
}

// ImagePromise is returned by ResolveImage.
type ImagePromise interface {
	Image() (image.Image, error)
	Await(context.Context) (image.Image, error)
}

type imageLoader struct {
	await func(ctx context.Context) (image.Image, error)
}

func (loader imageLoader) Image() (image.Image, error) {
	return loader.await(context.Background())
}

func (loader imageLoader) Await(ctx context.Context) (image.Image, error) {
	return loader.await(ctx)
}
