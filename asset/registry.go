package asset

import (
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
)

const (
	defaultConcurrency = 4
	completionBuffer   = 256
)

type completion struct {
	id    ID
	value any
	deps  []string
	err   error
}

type slot struct {
	path   string
	names  []string
	state  LoadState
	value  any
	err    error
	deps   []ID
	accept func(any) bool
}

// Registry owns every asset slot of a scene. All methods must be called from
// the simulation thread; worker goroutines only read files, decode, and post
// a completion message that Update applies on the next call.
type Registry struct {
	fsys     fs.FS
	loaders  map[string]Loader
	fallback Loader
	runner   Runner
	log      *zap.Logger

	slots  []*slot
	byPath map[string]ID
	byName map[string]ID

	done  chan completion
	early []completion
}

type Option func(*Registry)

// WithRunner replaces the default goroutine pool.
func WithRunner(runner Runner) Option {
	return func(r *Registry) {
		if runner != nil {
			r.runner = runner
		}
	}
}

// WithConcurrency sets the size of the default goroutine pool.
func WithConcurrency(n int) Option {
	return func(r *Registry) {
		r.runner = NewPoolRunner(n)
	}
}

// WithLogger sets the registry logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithLoader registers a loader for its extensions, replacing built-ins.
func WithLoader(loader Loader) Option {
	return func(r *Registry) {
		if loader == nil {
			return
		}
		for _, ext := range loader.Extensions() {
			r.loaders[ext] = loader
		}
	}
}

// NewRegistry creates a registry reading from fsys with the glTF, WAV and
// blob loaders installed.
func NewRegistry(fsys fs.FS, opts ...Option) *Registry {
	r := &Registry{
		fsys:     fsys,
		loaders:  make(map[string]Loader),
		fallback: BlobLoader{},
		runner:   NewPoolRunner(defaultConcurrency),
		log:      zap.NewNop(),
		byPath:   make(map[string]ID),
		byName:   make(map[string]ID),
		done:     make(chan completion, completionBuffer),
	}
	for _, loader := range []Loader{GltfLoader{}, WAVLoader{SampleRate: DefaultSampleRate}} {
		for _, ext := range loader.Extensions() {
			r.loaders[ext] = loader
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load requests the file at p and records it under name. It never blocks: the
// returned handle is Loading until a later Update observes the completion.
// Requesting an already known path returns the existing slot.
func Load[T any](r *Registry, name, p string) Handle[T] {
	if r == nil {
		return Handle[T]{}
	}
	id := r.request(p, func(v any) bool {
		_, ok := v.(T)
		return ok
	}, false)
	r.alias(name, id)
	return Handle[T]{id: id}
}

// Get resolves a handle to its payload. It reports false until the slot is
// Ready, which callers treat as "not yet", never as an error.
func Get[T any](r *Registry, h Handle[T]) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	s := r.slot(h.id)
	if s == nil || s.state != Ready {
		return zero, false
	}
	v, ok := s.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// GetReady is Get that also waits for the slot's dependencies: it reports
// false until RecursiveState is Ready. Spawning code uses it so a model is
// never instantiated while its buffers or images are still loading.
func GetReady[T any](r *Registry, h Handle[T]) (T, bool) {
	var zero T
	if r.RecursiveState(h) != Ready {
		return zero, false
	}
	return Get(r, h)
}

func (r *Registry) request(p string, accept func(any) bool, dependency bool) ID {
	clean, pathErr := cleanPath(p)
	key := clean
	if pathErr != nil {
		key = p
	}
	if id, ok := r.byPath[key]; ok {
		return id
	}

	s := &slot{path: key, state: Loading, accept: accept}
	r.slots = append(r.slots, s)
	id := ID(len(r.slots))
	r.byPath[key] = id

	if pathErr != nil {
		r.early = append(r.early, completion{id: id, err: fmt.Errorf("asset: load %q: %w", p, pathErr)})
		return id
	}

	loader := r.fallback
	if !dependency {
		var ok bool
		loader, ok = r.loaders[extension(clean)]
		if !ok {
			r.early = append(r.early, completion{id: id, err: fmt.Errorf("asset: load %q: %w %q", p, ErrUnknownLoader, extension(clean))})
			return id
		}
	}

	r.log.Debug("asset requested", zap.Stringer("id", id), zap.String("path", clean), zap.Bool("dependency", dependency))
	fsys, done := r.fsys, r.done
	r.runner.Go(clean, func() {
		done <- runLoad(fsys, loader, id, clean)
	})
	return id
}

func (r *Registry) alias(name string, id ID) {
	if name == "" || id == 0 {
		return
	}
	r.byName[name] = id
	s := r.slot(id)
	for _, n := range s.names {
		if n == name {
			return
		}
	}
	s.names = append(s.names, name)
}

func runLoad(fsys fs.FS, loader Loader, id ID, p string) (c completion) {
	c.id = id
	defer func() {
		if rec := recover(); rec != nil {
			c.value = nil
			c.err = fmt.Errorf("asset: decode %q: panic: %v", p, rec)
		}
	}()

	if fsys == nil {
		c.err = fmt.Errorf("asset: read %q: no file system", p)
		return c
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		c.err = fmt.Errorf("asset: read %q: %w", p, err)
		return c
	}

	ctx := &LoadContext{Path: p}
	value, err := loader.Load(ctx, data)
	if err != nil {
		c.err = fmt.Errorf("asset: decode %q: %w", p, err)
		return c
	}
	c.value = value
	c.deps = ctx.Dependencies()
	return c
}

// Update drains every completion posted since the last call without blocking,
// applies it to its slot, requests discovered dependencies, and returns one
// event per slot that became terminal. A completion for a slot that is
// already terminal is dropped.
func (r *Registry) Update() []Event {
	if r == nil {
		return nil
	}
	var events []Event
	early := r.early
	r.early = nil
	for _, c := range early {
		events = r.complete(c, events)
	}
	for {
		select {
		case c := <-r.done:
			events = r.complete(c, events)
		default:
			return events
		}
	}
}

func (r *Registry) complete(c completion, events []Event) []Event {
	s := r.slot(c.id)
	if s == nil || s.state.Terminal() {
		return events
	}
	if c.err == nil && s.accept != nil && !s.accept(c.value) {
		c.err = fmt.Errorf("asset: load %q: %w (got %T)", s.path, ErrTypeMismatch, c.value)
	}

	evt := Event{ID: c.id, Path: s.path, Name: s.name()}
	if c.err != nil {
		s.state = Failed
		s.err = c.err
		evt.Kind = EventFailed
		evt.Err = c.err
		return append(events, evt)
	}

	s.state = Ready
	s.value = c.value
	for _, dep := range c.deps {
		s.deps = append(s.deps, r.request(dep, nil, true))
	}
	evt.Kind = EventLoaded
	return append(events, evt)
}

func (r *Registry) slot(id ID) *slot {
	if id == 0 || int(id) > len(r.slots) {
		return nil
	}
	return r.slots[id-1]
}

func (s *slot) name() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[0]
}

// State returns the slot's own state, ignoring dependencies.
func (r *Registry) State(h AnyHandle) LoadState {
	if r == nil || h == nil {
		return Unrequested
	}
	s := r.slot(h.ID())
	if s == nil {
		return Unrequested
	}
	return s.state
}

// IsReady reports whether the slot itself finished loading.
func (r *Registry) IsReady(h AnyHandle) bool {
	return r.State(h) == Ready
}

// RecursiveState folds the slot with all of its transitive dependencies:
// Failed if any failed, Ready only if all are ready, Loading otherwise.
func (r *Registry) RecursiveState(h AnyHandle) LoadState {
	if r == nil || h == nil || r.slot(h.ID()) == nil {
		return Unrequested
	}
	visited := make(map[ID]bool)
	return r.recursive(h.ID(), visited)
}

func (r *Registry) recursive(id ID, visited map[ID]bool) LoadState {
	if visited[id] {
		return Ready
	}
	visited[id] = true
	s := r.slot(id)
	if s == nil {
		return Unrequested
	}
	if s.state != Ready {
		return s.state
	}
	state := Ready
	for _, dep := range s.deps {
		switch r.recursive(dep, visited) {
		case Failed:
			return Failed
		case Ready:
		default:
			state = Loading
		}
	}
	return state
}

// Dependencies returns the ids the slot depends on directly.
func (r *Registry) Dependencies(h AnyHandle) []ID {
	if r == nil || h == nil {
		return nil
	}
	s := r.slot(h.ID())
	if s == nil {
		return nil
	}
	return append([]ID(nil), s.deps...)
}

// Err returns why a slot failed, or nil.
func (r *Registry) Err(h AnyHandle) error {
	if r == nil || h == nil {
		return nil
	}
	if s := r.slot(h.ID()); s != nil {
		return s.err
	}
	return nil
}

// Path returns the cleaned path of a slot.
func (r *Registry) Path(h AnyHandle) string {
	if r == nil || h == nil {
		return ""
	}
	if s := r.slot(h.ID()); s != nil {
		return s.path
	}
	return ""
}

// Lookup finds the slot recorded under a logical name.
func (r *Registry) Lookup(name string) (ID, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.byName[name]
	return id, ok
}

// Names returns every logical name, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of slots, dependencies included.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.slots)
}

// Pending returns how many slots are still Loading.
func (r *Registry) Pending() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.slots {
		if s.state == Loading {
			n++
		}
	}
	return n
}

// ID lets a bare ID be used wherever a handle is accepted.
func (id ID) ID() ID {
	return id
}
