// Package ffi is the cgo boundary: a flat table of C-callable functions
// mirroring a C-string/double ABI, for embedding this module behind a
// shared-library or WASM host. It holds the one piece of process-wide
// mutable state in the module -- a single active Manager -- accessed only
// through the exported entry points below, never as an ambient global
// reached into from the core packages.
package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/obra-studios/lienzo-collab"
	"github.com/obra-studios/lienzo-collab/projection"
)

// parseID parses a C string id, wrapped so every entry point below can
// treat a malformed or unknown id the same way the original treated a
// failed stringToCRDTId: a silent no-op / zero-value return, never a
// panic across the FFI boundary.
func parseID(s *C.char) (crdt.Id, error) {
	return crdt.ParseID(C.GoString(s))
}

var (
	mu      sync.Mutex
	current *projection.Manager
)

// active returns the current manager, lazily creating a default one (a
// freshly generated site id) if init has never been called -- mirroring
// the original binding's "create default manager if none exists" get path,
// but without ever leaving the zero state implicit.
func active() *projection.Manager {
	if current == nil {
		current = projection.NewDefaultManager()
	}
	return current
}

// ManagerInit replaces the active manager with a fresh one at siteID.
//
//export ManagerInit
func ManagerInit(siteID *C.char) {
	mu.Lock()
	defer mu.Unlock()
	current = projection.NewManager(C.GoString(siteID))
}

// ManagerReset drops the active manager; the next call that needs one
// lazily creates a default-site replacement.
//
//export ManagerReset
func ManagerReset() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}

// copyToBuffer writes s into buffer (capacity bufferSize bytes), truncating
// and NUL-terminating if s doesn't fit -- the same contract as the
// original's strncpy-plus-explicit-NUL enumeration writer.
func copyToBuffer(s string, buffer *C.char, bufferSize C.int) {
	if bufferSize <= 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(buffer)), int(bufferSize))
	n := copy(dst[:bufferSize-1], s)
	dst[n] = 0
}

// newCString allocates a C-owned copy of s; the caller must release it
// via FreeString.
func newCString(s string) *C.char {
	return C.CString(s)
}

// FreeString releases a string previously returned by one of the create/get
// functions below. Passing NULL is a no-op.
//
//export FreeString
func FreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

// --- Frame operations ---

//export CreateFrame
func CreateFrame(x, y, width, height C.double) *C.char {
	mu.Lock()
	defer mu.Unlock()
	view := active().CreateFrame(float64(x), float64(y), float64(width), float64(height))
	return newCString(view.ID().String())
}

//export FrameGetX
func FrameGetX(frameID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return frameDoubleGetter(frameID, projection.FrameView.X)
}

//export FrameGetY
func FrameGetY(frameID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return frameDoubleGetter(frameID, projection.FrameView.Y)
}

//export FrameGetWidth
func FrameGetWidth(frameID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return frameDoubleGetter(frameID, projection.FrameView.Width)
}

//export FrameGetHeight
func FrameGetHeight(frameID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return frameDoubleGetter(frameID, projection.FrameView.Height)
}

func frameDoubleGetter(frameID *C.char, get func(projection.FrameView) float64) C.double {
	id, err := parseID(frameID)
	if err != nil {
		return 0
	}
	view, ok := projection.AsFrameView(active().Document(), id)
	if !ok {
		return 0
	}
	return C.double(get(view))
}

//export FrameSetPosition
func FrameSetPosition(frameID *C.char, x, y C.double) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(frameID)
	if err != nil {
		return
	}
	if view, ok := projection.AsFrameView(active().Document(), id); ok {
		view.SetPosition(float64(x), float64(y))
	}
}

//export FrameSetSize
func FrameSetSize(frameID *C.char, width, height C.double) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(frameID)
	if err != nil {
		return
	}
	if view, ok := projection.AsFrameView(active().Document(), id); ok {
		view.SetSize(float64(width), float64(height))
	}
}

//export FrameDelete
func FrameDelete(frameID *C.char) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(frameID)
	if err != nil {
		return
	}
	active().DeleteFrame(id)
}

//export GetAllFrames
func GetAllFrames(buffer *C.char, bufferSize C.int) {
	mu.Lock()
	defer mu.Unlock()
	frames := active().AllFrames()
	ids := make([]string, 0, len(frames))
	for _, f := range frames {
		ids = append(ids, f.ID().String())
	}
	copyToBuffer(strings.Join(ids, ","), buffer, bufferSize)
}

// --- Rectangle operations ---

//export CreateRectangle
func CreateRectangle(parentID *C.char, x, y, width, height C.double) *C.char {
	mu.Lock()
	defer mu.Unlock()
	parent, err := parseID(parentID)
	if err != nil {
		parent = active().Document().RootID
	}
	view := projection.CreateRectangle(active().Document(), parent, float64(x), float64(y), float64(width), float64(height))
	return newCString(view.ID().String())
}

//export RectangleGetX
func RectangleGetX(rectID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return rectangleDoubleGetter(rectID, projection.RectangleView.X)
}

//export RectangleGetY
func RectangleGetY(rectID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return rectangleDoubleGetter(rectID, projection.RectangleView.Y)
}

//export RectangleGetWidth
func RectangleGetWidth(rectID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return rectangleDoubleGetter(rectID, projection.RectangleView.Width)
}

//export RectangleGetHeight
func RectangleGetHeight(rectID *C.char) C.double {
	mu.Lock()
	defer mu.Unlock()
	return rectangleDoubleGetter(rectID, projection.RectangleView.Height)
}

func rectangleDoubleGetter(rectID *C.char, get func(projection.RectangleView) float64) C.double {
	id, err := parseID(rectID)
	if err != nil {
		return 0
	}
	view, ok := projection.AsRectangleView(active().Document(), id)
	if !ok {
		return 0
	}
	return C.double(get(view))
}

//export RectangleSetPosition
func RectangleSetPosition(rectID *C.char, x, y C.double) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(rectID)
	if err != nil {
		return
	}
	if view, ok := projection.AsRectangleView(active().Document(), id); ok {
		view.SetPosition(float64(x), float64(y))
	}
}

//export RectangleSetSize
func RectangleSetSize(rectID *C.char, width, height C.double) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(rectID)
	if err != nil {
		return
	}
	if view, ok := projection.AsRectangleView(active().Document(), id); ok {
		view.SetSize(float64(width), float64(height))
	}
}

//export RectangleDelete
func RectangleDelete(rectID *C.char) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(rectID)
	if err != nil {
		return
	}
	if view, ok := projection.AsRectangleView(active().Document(), id); ok {
		view.Delete()
	}
}

//export GetAllRectangles
func GetAllRectangles(buffer *C.char, bufferSize C.int) {
	mu.Lock()
	defer mu.Unlock()
	rects := active().AllRectangles()
	ids := make([]string, 0, len(rects))
	for _, r := range rects {
		ids = append(ids, r.ID().String())
	}
	copyToBuffer(strings.Join(ids, ","), buffer, bufferSize)
}

// --- Text box operations ---

//export CreateTextBox
func CreateTextBox(parentID *C.char, x, y, width, height C.double, text *C.char) *C.char {
	mu.Lock()
	defer mu.Unlock()
	parent, err := parseID(parentID)
	if err != nil {
		parent = active().Document().RootID
	}
	view := projection.CreateTextBox(active().Document(), parent, float64(x), float64(y), float64(width), float64(height), C.GoString(text))
	return newCString(view.ID().String())
}

//export TextBoxSetText
func TextBoxSetText(textID *C.char, text *C.char) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(textID)
	if err != nil {
		return
	}
	if view, ok := projection.AsTextBoxView(active().Document(), id); ok {
		view.SetText(C.GoString(text))
	}
}

//export TextBoxGetText
func TextBoxGetText(textID *C.char) *C.char {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(textID)
	if err != nil {
		return nil
	}
	view, ok := projection.AsTextBoxView(active().Document(), id)
	if !ok {
		return nil
	}
	return newCString(view.GetText())
}

//export TextBoxDelete
func TextBoxDelete(textID *C.char) {
	mu.Lock()
	defer mu.Unlock()
	id, err := parseID(textID)
	if err != nil {
		return
	}
	if view, ok := projection.AsTextBoxView(active().Document(), id); ok {
		view.Delete()
	}
}

//export GetAllTextBoxes
func GetAllTextBoxes(buffer *C.char, bufferSize C.int) {
	mu.Lock()
	defer mu.Unlock()
	texts := active().AllTextBoxes()
	ids := make([]string, 0, len(texts))
	for _, tb := range texts {
		ids = append(ids, tb.ID().String())
	}
	copyToBuffer(strings.Join(ids, ","), buffer, bufferSize)
}
