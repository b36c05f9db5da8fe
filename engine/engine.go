package engine

import (
	"log"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

// Scene is a unit of per-tick work owned by the engine, such as a tour navigator.
type Scene interface {
	// Tick advances the scene by deltaTime seconds.
	Tick(deltaTime float32)

	// Resize is called with the new client size whenever the window resizes, and once when
	// the scene is added.
	Resize(width, height int)

	// Dispose releases the scene. It is called when the scene is removed or the engine quits.
	Dispose()
}

// engine implements the Engine interface.
// Runs every tick on the window's message loop so scenes and input listeners share one thread.
type engine struct {
	window window.Window
	logger *log.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	lastTick       time.Time

	scenes map[int]Scene

	quitting bool
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, scenes and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after all scenes ticked.
	// Use this for host work such as applying reloaded configuration.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key, replacing and disposing any scene already
	// there. Scenes tick in ascending key order.
	//
	// Parameters:
	//   - key: the ordering key (lower ticks first)
	//   - s: the Scene to register
	AddScene(key int, s Scene)

	// RemoveScene removes and disposes the scene at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - Scene: the scene at the key, or nil if not found
	Scene(key int) Scene

	// Scenes returns a copy of all registered scenes by key.
	//
	// Returns:
	//   - map[int]Scene: a copy of the scenes map
	Scenes() map[int]Scene

	// Run starts the main loop on the calling goroutine (blocks until the window closes), then
	// disposes every scene.
	Run()

	// Quit asks the main loop to stop after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes:         make(map[int]Scene),
		logger:         log.Default(),
		engineTickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithBudget(e.engineTickRate))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Printf("[Engine] no window to run")
		return
	}
	e.lastTick = time.Now()
	e.window.SetUpdateCallback(e.update)
	e.window.ProcessMessages()
	e.disposeAll()
}

// Quit asks the window loop to stop; the close happens on the loop's own thread.
func (e *engine) Quit() {
	e.quitting = true
}

// update runs once per message loop iteration. It waits out the rest of the tick period and
// then ticks.
func (e *engine) update() {
	if e.quitting {
		if err := e.window.Close(); err != nil {
			e.logger.Printf("[Engine] close window: %v", err)
		}
		return
	}

	if remaining := e.engineTickRate - time.Since(e.lastTick); remaining > 0 {
		time.Sleep(remaining)
	}
	now := time.Now()
	dt := float32(now.Sub(e.lastTick).Seconds())
	e.lastTick = now
	e.tick(dt)

	if e.profilingEnabled {
		e.profiler.Tick(time.Since(now))
	}
}

// tick advances every scene in ascending key order, then the tick callback.
func (e *engine) tick(dt float32) {
	for _, k := range e.sortedKeys() {
		e.tickScene(k, e.scenes[k], dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

// tickScene runs one scene's tick, recovering a panic so that one scene cannot stop the loop.
func (e *engine) tickScene(key int, s Scene, dt float32) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[Engine] scene %d tick recovered from panic: %v", key, r)
		}
	}()
	s.Tick(dt)
}

func (e *engine) resize(width, height int) {
	for _, k := range e.sortedKeys() {
		e.scenes[k].Resize(width, height)
	}
}

func (e *engine) sortedKeys() []int {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (e *engine) disposeAll() {
	for _, k := range e.sortedKeys() {
		e.scenes[k].Dispose()
		delete(e.scenes, k)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
	e.profiler.SetBudget(e.engineTickRate)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s Scene) {
	if old, ok := e.scenes[key]; ok && old != s {
		old.Dispose()
	}
	e.scenes[key] = s
	if e.window != nil {
		s.Resize(e.window.Width(), e.window.Height())
	}
}

func (e *engine) RemoveScene(key int) {
	if s, ok := e.scenes[key]; ok {
		s.Dispose()
		delete(e.scenes, key)
	}
}

func (e *engine) Scene(key int) Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]Scene {
	cp := make(map[int]Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
