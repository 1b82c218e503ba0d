package quill

import "sync"

// A Frame is one entry in the call stack: the owner object serving as the
// implicit this for the invocation, and the arguments it received.
type Frame struct {
	Owner *Object
	Args  Args
}

// Binding is the call stack shared by everything a VM runs. It is an
// explicit, internally synchronized sequence rather than ambient global
// state, so independent VMs never cross-contaminate stacks. Reads may
// proceed concurrently with each other but are mutually exclusive with
// pushes and pops.
type Binding struct {
	mu     sync.RWMutex
	frames []Frame
}

// NewBinding creates an empty call stack.
func NewBinding() *Binding {
	return &Binding{}
}

// PushFrame pushes a frame. Every push must pair with exactly one pop on
// every exit path; use VM.RunInNewFrame unless implementing a deliberately
// irregular construct.
func (b *Binding) PushFrame(owner *Object, args Args) {
	b.mu.Lock()
	b.frames = append(b.frames, Frame{Owner: owner, Args: args})
	b.mu.Unlock()
}

// PopFrame removes and returns the most recent frame. It returns false if
// the stack is empty.
func (b *Binding) PopFrame() (Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return Frame{}, false
	}
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	return f, true
}

// FrameAt returns the frame at the given depth. Index 0 is the most recent
// frame; this is what a :N frame-index token resolves to.
func (b *Binding) FrameAt(n int) (Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 0 || n >= len(b.frames) {
		return Frame{}, false
	}
	return b.frames[len(b.frames)-1-n], true
}

// Depth returns the number of active frames.
func (b *Binding) Depth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames)
}

// Owners returns the owner of every active frame, most recent first.
func (b *Binding) Owners() []*Object {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := make([]*Object, len(b.frames))
	for i, f := range b.frames {
		r[len(b.frames)-1-i] = f.Owner
	}
	return r
}

// RunInNewFrame pushes a frame, runs body, and pops the frame on every exit
// path, propagating body's result unchanged. This is the sole sanctioned way
// to create a frame; it guarantees no leaked frames even when body fails.
func (vm *VM) RunInNewFrame(owner *Object, args Args, body func() (*Object, error)) (*Object, error) {
	vm.Binding.PushFrame(owner, args)
	defer vm.Binding.PopFrame()
	return body()
}
