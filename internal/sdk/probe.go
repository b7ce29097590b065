package sdk

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// Snapshot is the result of probing one framework lib directory. It is plain
// data so that everything downstream stays a pure function of it.
type Snapshot struct {
	FrameworkLib string
	Flavor       Flavor
	HasTheme     bool
	// OverlayPath is empty when the overlay file does not exist.
	OverlayPath string
}

// Layout returns the path helper for the probed directory.
func (s Snapshot) Layout() Layout {
	return Layout{FrameworkLib: s.FrameworkLib}
}

// Prober runs the existence checks, optionally caching them per framework
// path since SDK layout is stable for the life of a workspace.
type Prober struct {
	fs    afero.Fs
	cache *lru.Cache[string, Snapshot]
}

// NewProber creates a prober over fs. cacheSize <= 0 disables caching.
func NewProber(fs afero.Fs, cacheSize int) *Prober {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	p := &Prober{fs: fs}
	if cacheSize > 0 {
		// only fails for non-positive sizes
		p.cache, _ = lru.New[string, Snapshot](cacheSize)
	}
	return p
}

// Fs exposes the filesystem the prober reads.
func (p *Prober) Fs() afero.Fs {
	return p.fs
}

// Inspect probes frameworkLib.
func (p *Prober) Inspect(frameworkLib string) Snapshot {
	if p.cache != nil {
		if snap, ok := p.cache.Get(frameworkLib); ok {
			return snap
		}
	}
	snap := Inspect(p.fs, frameworkLib)
	if p.cache != nil {
		p.cache.Add(frameworkLib, snap)
	}
	return snap
}

// Forget drops a cached snapshot, e.g. after the SDK was swapped on disk.
func (p *Prober) Forget(frameworkLib string) {
	if p.cache != nil {
		p.cache.Remove(frameworkLib)
	}
}

// Inspect probes frameworkLib without caching.
func Inspect(fs afero.Fs, frameworkLib string) Snapshot {
	layout := Layout{FrameworkLib: frameworkLib}
	snap := Snapshot{
		FrameworkLib: frameworkLib,
		Flavor:       DetectFlavor(fs, frameworkLib),
		HasTheme:     exists(fs, layout.ThemePath()),
	}
	if overlay := layout.OverlayPath(); exists(fs, overlay) {
		snap.OverlayPath = overlay
	}
	return snap
}

// DetectFlavor classifies the SDK owning frameworkLib.
func DetectFlavor(fs afero.Fs, frameworkLib string) Flavor {
	layout := Layout{FrameworkLib: frameworkLib}
	if exists(fs, layout.RoyaleMarkerPath()) {
		return FlavorRoyale
	}
	return ClassifyFlavor(false, exists(fs, layout.LegacyCompilerPath()))
}

// An unreadable path counts as missing: probes never fail.
func exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
