// Package evalstate provides the state shared between calculator actors: a
// queue of pending commands and the value stack, guarded together by a single
// lock that is poisoned if a holder panics.
package evalstate

import (
	"errors"
	"sync"

	"github.com/jcorbin/rpncalc/internal/rpn"
)

// ErrPoisoned is returned by every acquisition after some holder panicked
// while holding the lock.
var ErrPoisoned = errors.New("shared state poisoned")

// State is the data guarded by Shared.
type State struct {
	queue []rpn.Command
	Stack rpn.Stack
}

// Enqueue appends commands to the back of the queue.
func (st *State) Enqueue(cmds ...rpn.Command) {
	st.queue = append(st.queue, cmds...)
}

// Dequeue removes and returns the oldest queued command.
func (st *State) Dequeue() (rpn.Command, bool) {
	if len(st.queue) == 0 {
		return rpn.Command{}, false
	}
	cmd := st.queue[0]
	st.queue = st.queue[1:]
	if len(st.queue) == 0 {
		st.queue = nil
	}
	return cmd, true
}

// QueueLen returns the number of pending commands.
func (st *State) QueueLen() int { return len(st.queue) }

// Shared guards one State with one mutex.
type Shared struct {
	mu       sync.Mutex
	poisoned bool
	state    State
}

// New returns a Shared with an empty queue and stack.
func New() *Shared { return &Shared{} }

// Do runs f while holding exclusive access to the state, returning f's error.
//
// If f panics, the lock is marked poisoned before the panic continues up the
// caller's stack; from then on Do never calls f again and returns
// ErrPoisoned.
func (sh *Shared) Do(f func(st *State) error) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.poisoned {
		return ErrPoisoned
	}
	defer func() {
		if e := recover(); e != nil {
			sh.poisoned = true
			panic(e)
		}
	}()
	return f(&sh.state)
}

// Poisoned reports whether a holder has faulted.
func (sh *Shared) Poisoned() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.poisoned
}
