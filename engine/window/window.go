// Package window hosts the tour in a platform window. The window translates native input into
// input.Events dispatched on itself, and owns a virtual scroll document so that a scroll-driven
// scene behaves like a scrolling page.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

// Window provides platform windowing, input events and a scrollable document.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	input.EventTarget

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// ScrollOffset returns the document scroll offset in pixels.
	//
	// Returns:
	//   - float32: offset from the top of the document
	ScrollOffset() float32

	// ScrollTo moves the document, clamped to [0, ContentLength-Height].
	//
	// Parameters:
	//   - offset: the new offset in pixels
	ScrollTo(offset float32)

	// SetContentLength sets the document length in pixels. 0 makes the document exactly one
	// viewport tall, so it cannot scroll.
	//
	// Parameters:
	//   - length: document length in pixels
	SetContentLength(length float32)

	// ContentLength returns the document length in pixels.
	//
	// Returns:
	//   - float32: the length set by SetContentLength, or the viewport height if unset
	ContentLength() float32

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// SetTitle changes the text shown in the window's title bar.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Title returns the current window title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, the scroll document and event listeners.
type engineWindow struct {
	*input.Target

	// title is the window title displayed in the title bar.
	title string

	// maxWidth, maxHeight, minWidth and minHeight bound interactive resizing.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the current client area size in pixels.
	width  int
	height int

	// wheelStep is how many pixels one wheel notch scrolls.
	wheelStep float32

	// scrollOffset and contentLength describe the virtual document.
	scrollOffset  float32
	contentLength float32

	// cursorX and cursorY are the last known pointer position.
	cursorX float32
	cursorY float32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		Target:    input.NewTarget(),
		title:     "Tour",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
		wheelStep: 100,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	if w.internalWindow != nil {
		platformSetTitle(w, title)
	}
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
