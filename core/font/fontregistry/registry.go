package fontregistry

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/npillmayer/belle/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about loaded fonts for a
// renderer.
type Registry struct {
	sync.Mutex
	fonts map[string]*font.ScalableFont
	load  func(font.FaceRef) (*font.ScalableFont, error)
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*font.ScalableFont),
		load:  font.LoadOpenTypeFont,
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// If the face reference is already associated with a font, that font will
// not be overridden.
func (fr *Registry) StoreFont(ref font.FaceRef, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	k := key(ref)
	if _, ok := fr.fonts[k]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, k)
		fr.fonts[k] = f
	}
}

// LoadFace returns the font for a face reference, loading and caching it
// if necessary. An empty path references the fallback font.
//
// Errors are of type *font.FaceLoadError.
func (fr *Registry) LoadFace(ref font.FaceRef) (*font.ScalableFont, error) {
	if ref.Path == "" {
		return font.FallbackFont(), nil
	}
	k := key(ref)
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[k]; ok {
		return f, nil
	}
	tracer().Debugf("registry does not contain font %s, loading", k)
	f, err := fr.load(ref)
	if err != nil {
		return nil, err
	}
	tracer().Infof("font registry caches font %s as %s", f.Fontname, k)
	fr.fonts[k] = f
	return f, nil
}

// TypeCase returns a typecase of a face at a given size (pixels per em).
func (fr *Registry) TypeCase(ref font.FaceRef, size float64) (*font.TypeCase, error) {
	f, err := fr.LoadFace(ref)
	if err != nil {
		return nil, err
	}
	return f.PrepareCase(size)
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// Len returns the number of fonts held in the registry.
func (fr *Registry) Len() int {
	fr.Lock()
	defer fr.Unlock()
	return len(fr.fonts)
}

func key(ref font.FaceRef) string {
	p := ref.Path
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return fmt.Sprintf("%s#%d", filepath.Clean(p), ref.Index)
}
