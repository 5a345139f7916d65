package mit

import "testing"

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack(4)
	for _, v := range []Word{1, 2, 3} {
		if err := s.Push(v); err != OK {
			t.Fatalf("push %d: %v", v, err)
		}
	}
	for _, want := range []Word{3, 2, 1} {
		got, err := s.Pop()
		if err != OK {
			t.Fatalf("pop: %v", err)
		}
		if got != want {
			t.Fatalf("pop = %d, want %d", got, want)
		}
	}
}

func TestStackOverflow(t *testing.T) {
	s := NewStack(2)
	assert(t, s.Push(1) == OK, "first push should fit")
	assert(t, s.Push(2) == OK, "second push should fit")
	if err := s.Push(3); err != StackOverflow {
		t.Fatalf("got %v, want StackOverflow", err)
	}
	// A failed push must not have changed depth.
	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 after rejected push", s.Depth())
	}
}

func TestStackUnderflow(t *testing.T) {
	s := NewStack(1)
	if _, err := s.Pop(); err != InvalidStackRead {
		t.Fatalf("got %v, want InvalidStackRead", err)
	}
}

func TestStackPositionAndSnapshot(t *testing.T) {
	s := NewStack(4)
	s.Push(10)
	s.Push(20)
	snap := s.snapshot()

	addr, err := s.PositionAddr(0, true)
	assert(t, err == OK, "position 0 should be valid")
	*addr = 99
	v, _ := s.Peek(0)
	assert(t, v == 99, "write through PositionAddr should be visible")

	s.restore(snap)
	v, _ = s.Peek(0)
	assert(t, v == 20, "restore should undo the write")
}

func TestStackDrop(t *testing.T) {
	s := NewStack(4)
	s.Push(1)
	s.Push(2)
	s.Push(3)
	if err := s.Drop(1); err != OK {
		t.Fatalf("drop: %v", err)
	}
	if s.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", s.Depth())
	}
	v, _ := s.Peek(0)
	if v != 1 {
		t.Fatalf("top after drop = %d, want 1", v)
	}
}
