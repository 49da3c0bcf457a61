package locale

import (
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// DefaultName is the locale every registry starts with.
const DefaultName = "en"

// Registry holds the defined locales. Every locale keeps a stack of
// versions so that Update can be undone. The zero value contains the
// built-in locales and is safe for concurrent use.
type Registry struct {
	// Logger receives warnings about overridden locales, deferred parents
	// and fallbacks. If nil, slog.Default() is used.
	Logger *slog.Logger

	once    sync.Once
	mu      sync.RWMutex
	base    *Config
	locales map[string][]*Locale // normalized name -> versions, current last
	pending map[string][]*Config // normalized parent name -> waiting children
	names   map[*Config]string
	def     string
}

// NewRegistry returns a registry with the built-in locales (en and lt) and
// en as the default.
func NewRegistry() *Registry {
	r := &Registry{}
	r.ensure()
	return r
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func (r *Registry) ensure() {
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.init()
	})
}

func (r *Registry) init() {
	r.locales = make(map[string][]*Locale)
	r.pending = make(map[string][]*Config)
	r.names = make(map[*Config]string)
	r.base = builtinConfig("base")
	for _, name := range []string{"en", "lt"} {
		if _, err := r.defineLocked(name, builtinConfig(name)); err != nil {
			panic(err)
		}
	}
	r.def = DefaultName
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Registry) currentLocked(key string) *Locale {
	versions := r.locales[key]
	if len(versions) == 0 {
		return nil
	}
	return versions[len(versions)-1]
}

// Define registers a locale built by merging cfg over its parent locale
// (cfg.ParentLocale) or over the base config. An existing locale of the
// same name is replaced, including its update history. A nil cfg removes
// the locale.
//
// If the parent is not defined yet the definition is deferred until it is,
// and Define returns a nil Locale and a nil error.
func (r *Registry) Define(name string, cfg *Config) (*Locale, error) {
	r.ensure()
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg == nil {
		delete(r.locales, normalize(name))
		return nil, nil
	}
	return r.defineLocked(name, cfg)
}

func (r *Registry) defineLocked(name string, cfg *Config) (*Locale, error) {
	key := normalize(name)
	parent := r.base
	if cfg.ParentLocale != "" {
		p := r.currentLocked(normalize(cfg.ParentLocale))
		if p == nil {
			pkey := normalize(cfg.ParentLocale)
			r.pending[pkey] = append(r.pending[pkey], cfg)
			r.names[cfg] = key
			r.logger().Warn("locale parent not defined yet, deferring", "locale", key, "parent", pkey)
			return nil, nil
		}
		parent = p.config
	}

	l, err := newLocale(key, Merge(parent, cfg))
	if err != nil {
		return nil, err
	}
	if _, ok := r.locales[key]; ok {
		r.logger().Warn("overriding existing locale", "locale", key)
	}
	r.locales[key] = []*Locale{l}

	children := r.pending[key]
	delete(r.pending, key)
	for _, child := range children {
		childName := r.names[child]
		delete(r.names, child)
		if _, err := r.defineLocked(childName, child); err != nil {
			r.logger().Warn("deferred locale failed", "locale", childName, "parent", key, "err", err)
		}
	}
	return l, nil
}

// Update merges cfg over the current version of a locale and pushes the
// result as its new version. Updating an unknown locale defines it over
// the base config. A nil cfg undoes the last update; when there is none,
// the locale is removed and Update returns nil.
func (r *Registry) Update(name string, cfg *Config) (*Locale, error) {
	r.ensure()
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalize(name)
	versions := r.locales[key]
	if cfg == nil {
		if len(versions) <= 1 {
			delete(r.locales, key)
			return nil, nil
		}
		r.locales[key] = versions[:len(versions)-1]
		return r.currentLocked(key), nil
	}

	parent := r.base
	if cur := r.currentLocked(key); cur != nil {
		parent = cur.config
	}
	l, err := newLocale(key, Merge(parent, cfg))
	if err != nil {
		return nil, err
	}
	r.locales[key] = append(versions[:len(versions):len(versions)], l)
	return l, nil
}

// Get returns the locale registered under name, or the default locale
// when name is empty.
func (r *Registry) Get(name string) (*Locale, bool) {
	if name == "" {
		return r.Default(), true
	}
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	l := r.currentLocked(normalize(name))
	return l, l != nil
}

// Choose returns the first of names that is defined, trying each name's
// more general forms ("en-gb" before "en") before moving on to the next
// name. Without a match the default locale is returned.
func (r *Registry) Choose(names ...string) *Locale {
	if l, ok := r.lookup(names...); ok {
		return l
	}
	def := r.Default()
	if len(names) > 0 {
		r.logger().Debug("no matching locale, using default", "locale", strings.Join(names, ","), "default", def.Name())
	}
	return def
}

func (r *Registry) lookup(names ...string) (*Locale, bool) {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		for _, key := range candidates(name) {
			if l := r.currentLocked(key); l != nil {
				return l, true
			}
		}
	}
	return nil, false
}

// candidates lists the keys to try for name, most specific first.
func candidates(name string) []string {
	key := normalize(name)
	if key == "" {
		return nil
	}
	res := []string{key}
	seen := map[string]bool{key: true}
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			res = append(res, k)
		}
	}
	if tag, err := language.Parse(key); err == nil {
		for i := 0; i < 8 && !tag.IsRoot(); i++ {
			add(normalize(tag.String()))
			tag = tag.Parent()
		}
	}
	parts := strings.Split(key, "-")
	for j := len(parts) - 1; j > 0; j-- {
		add(strings.Join(parts[:j], "-"))
	}
	return res
}

// SetDefault makes the first defined of names the default locale and
// returns the name of the default locale, which is unchanged when none of
// names is defined.
func (r *Registry) SetDefault(names ...string) string {
	l, ok := r.lookup(names...)
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.def = l.Name()
	} else if len(names) > 0 {
		r.logger().Warn("locale not found, keeping default", "locale", strings.Join(names, ","), "default", r.def)
	}
	return r.def
}

// Default returns the default locale. If it was removed, the built-in
// English locale is restored as default.
func (r *Registry) Default() *Locale {
	r.ensure()
	r.mu.RLock()
	l := r.currentLocked(r.def)
	r.mu.RUnlock()
	if l != nil {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l := r.currentLocked(r.def); l != nil {
		return l
	}
	r.def = DefaultName
	if l := r.currentLocked(DefaultName); l != nil {
		return l
	}
	l, err := r.defineLocked(DefaultName, builtinConfig(DefaultName))
	if err != nil {
		panic(err)
	}
	return l
}

// List returns the names of all defined locales in sorted order.
func (r *Registry) List() []string {
	r.ensure()
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.locales)
	slices.Sort(names)
	return names
}
