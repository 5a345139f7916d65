package mit

import (
	"fmt"
	"io"
)

// TrapTable is a synchronous collaborator for the TRAP basic instruction,
// adapted from the teacher's device-dispatch model (vm/devices.go) with its
// goroutine/channel concurrency removed: Mit traps run on the calling
// goroutine and return before the instruction completes (§5 forbids
// internal parallelism).
//
// The guest selects a device by pushing its id and pulls its args/results
// through the data stack, mirroring how the teacher's HardwareDevice
// implementations exchange messages over a channel -- here it's just a
// direct function call.
type TrapTable struct {
	handlers map[Word]func(s *State) ErrorCode
}

// NewTrapTable builds an empty trap table. Register adds handlers to it.
func NewTrapTable() *TrapTable {
	return &TrapTable{handlers: make(map[Word]func(s *State) ErrorCode)}
}

// Register installs the handler for device id.
func (t *TrapTable) Register(id Word, handler func(s *State) ErrorCode) {
	t.handlers[id] = handler
}

// Handler returns a TrapHandler bound to t: it pops a device id and
// dispatches to its registered handler, or raises InvalidOpcode if the id
// is unknown.
func (t *TrapTable) Handler() TrapHandler {
	return func(s *State) ErrorCode {
		id, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		h, ok := t.handlers[id]
		if !ok {
			return InvalidOpcode
		}
		return h(s)
	}
}

// Console device ids, exposed so host programs and tests can agree on a
// convention without a shared header file.
const (
	DeviceConsoleWrite Word = 1
	DeviceConsoleRead  Word = 2
)

// RegisterConsole installs a minimal console device: DeviceConsoleWrite
// pops and writes a single byte to w.
func (t *TrapTable) RegisterConsole(w io.Writer) {
	t.Register(DeviceConsoleWrite, func(s *State) ErrorCode {
		b, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		if _, werr := fmt.Fprintf(w, "%c", byte(b)); werr != nil {
			return InvalidOpcode
		}
		return OK
	})
}
