package mit

import "sync/atomic"

// TrapHandler is the external collaborator the TRAP basic instruction
// delegates to (§4.E). It observes/mutates the state and returns an error
// code, which is raised if non-zero.
type TrapHandler func(s *State) ErrorCode

// State is one Mit virtual machine: its registers, stack and memory (§2).
// A State is not safe for concurrent use; Mit is single-threaded by design
// (§5).
type State struct {
	PC Word
	IR Word

	Stack  *Stack
	Memory *Memory

	Trap TrapHandler

	// Args is the argument list whose length the ARGC extra instruction
	// reports (ARGV pushes 0), populated by the CLI driver from process
	// arguments.
	Args []string

	handle Word
}

// handleCounter assigns the small, stable integers used as state handles
// (§4's "state accessors"). It is process-global so every State, including
// one driven from another through RUN/SINGLE_STEP, gets a distinct handle.
var handleCounter int64

// liveStates lets a handle be validated and resolved back to its State,
// rather than exposing a raw pointer to guest code (DESIGN NOTES §9).
var liveStates = map[Word]*State{}

// NewState allocates a VM with the given stack and memory capacities (in
// words and bytes respectively).
func NewState(stackWords, memoryBytes int) *State {
	s := &State{
		Stack:  NewStack(stackWords),
		Memory: NewMemory(memoryBytes),
		handle: Word(atomic.AddInt64(&handleCounter, 1)),
	}
	liveStates[s.handle] = s
	return s
}

// Close removes s from the live-handle table. A State whose handle has been
// closed can no longer be reached via GET_/SET_/RUN/SINGLE_STEP.
func (s *State) Close() {
	delete(liveStates, s.handle)
}

// Handle returns the stable integer identifying s to the extra
// instructions (THIS_STATE's return value).
func (s *State) Handle() Word {
	return s.handle
}

func lookupState(handle Word) (*State, ErrorCode) {
	s, ok := liveStates[handle]
	if !ok {
		return nil, InvalidOpcode
	}
	return s, OK
}

// snapshot/restore cover every field a single step can mutate, used by the
// interpreter to enforce the all-or-nothing step discipline of §7.
type stateSnapshot struct {
	pc, ir Word
	stack  stackSnapshot
}

func (s *State) snapshot() stateSnapshot {
	return stateSnapshot{pc: s.PC, ir: s.IR, stack: s.Stack.snapshot()}
}

func (s *State) restore(snap stateSnapshot) {
	s.PC = snap.pc
	s.IR = snap.ir
	s.Stack.restore(snap.stack)
}
