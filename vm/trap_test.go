package mit

import (
	"bytes"
	"testing"
)

func TestTrapTableDispatchesToRegisteredDevice(t *testing.T) {
	table := NewTrapTable()
	var got Word
	table.Register(42, func(s *State) ErrorCode {
		v, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		got = v
		return OK
	})

	s := newTestState(t)
	s.Trap = table.Handler()
	s.Stack.Push(7)  // argument the handler will pop
	s.Stack.Push(42) // device id

	if err := s.Trap(s); err != OK {
		t.Fatalf("trap: %v", err)
	}
	if got != 7 {
		t.Fatalf("handler saw %d, want 7", got)
	}
}

func TestTrapTableRejectsUnknownDevice(t *testing.T) {
	table := NewTrapTable()
	s := newTestState(t)
	s.Trap = table.Handler()
	s.Stack.Push(99)
	if err := s.Trap(s); err != InvalidOpcode {
		t.Fatalf("got %v, want InvalidOpcode for an unregistered device", err)
	}
}

func TestRegisterConsoleWritesByte(t *testing.T) {
	var buf bytes.Buffer
	table := NewTrapTable()
	table.RegisterConsole(&buf)

	s := newTestState(t)
	s.Trap = table.Handler()
	s.Stack.Push(Word('A'))
	s.Stack.Push(DeviceConsoleWrite)

	if err := s.Trap(s); err != OK {
		t.Fatalf("trap: %v", err)
	}
	if buf.String() != "A" {
		t.Fatalf("console wrote %q, want %q", buf.String(), "A")
	}
}

// TestTrapOpcodeEndToEnd exercises TRAP as a packed basic opcode, not just a
// direct call, confirming it still sits correctly in the non-terminal
// decode path (it leaves room for more opcodes in the same word).
func TestTrapOpcodeEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	table := NewTrapTable()
	table.RegisterConsole(&buf)

	s := newTestState(t)
	s.Trap = table.Handler()

	a := NewAssembler(s.Memory, 0)
	a.Push(Word('Z'))
	a.Push(DeviceConsoleWrite)
	a.instruction(basicOpcodeByte[opTRAP], 0, false)
	loadFirst(t, s, 0)

	runSteps(t, s, 1) // push 'Z', word already loaded by loadFirst
	runSteps(t, s, 1) // refetch the word holding the device id push
	runSteps(t, s, 1) // push device id
	runSteps(t, s, 1) // refetch the word holding trap
	runSteps(t, s, 1) // trap

	if buf.String() != "Z" {
		t.Fatalf("console wrote %q, want %q", buf.String(), "Z")
	}
}
