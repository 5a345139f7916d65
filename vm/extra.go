package mit

// sizeofState is the size, in bytes, of the two registers SIZEOF_STATE
// reports on (pc, ir) at the configured word width -- wordBytes itself is
// sized against the Go-native Word type in word.go's init() assertion,
// the teacher's `unsafe.Sizeof`-based layout-check idiom.
var sizeofState = Word(wordBytes * 2)

// execExtra dispatches a reflective "extra instruction" (§4's state
// accessors), reached via NEXT's packed immediate operand. Most of these
// act on a VM state identified by a handle popped from this state's own
// stack (which may be this state's own handle); HALT, SIZEOF_STATE,
// THIS_STATE, ARGC and ARGV take no handle and act on the state currently
// executing.
func (s *State) execExtra(code extraCode) ErrorCode {
	switch code {
	case extraHALT:
		n, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		return ErrorCode(n)

	case extraSIZEOF_STATE:
		return s.Stack.Push(sizeofState)

	case extraTHIS_STATE:
		return s.Stack.Push(s.Handle())

	case extraGET_PC:
		return s.withTarget(func(t *State) (Word, ErrorCode) { return t.PC, OK })
	case extraSET_PC:
		return s.setTarget(func(t *State, v Word) ErrorCode { t.PC = v; return OK })
	case extraGET_IR:
		return s.withTarget(func(t *State) (Word, ErrorCode) { return t.IR, OK })
	case extraSET_IR:
		return s.setTarget(func(t *State, v Word) ErrorCode { t.IR = v; return OK })

	case extraGET_STACK_DEPTH:
		return s.withTarget(func(t *State) (Word, ErrorCode) { return Word(t.Stack.Depth()), OK })
	case extraSET_STACK_DEPTH:
		return s.setTarget(func(t *State, v Word) ErrorCode { t.Stack.SetDepth(int(v)); return OK })

	case extraGET_STACK_WORDS:
		return s.withTarget(func(t *State) (Word, ErrorCode) { return Word(t.Stack.Words()), OK })
	case extraSET_STACK_WORDS:
		// The stack's backing array is allocated once at NewState and is
		// not resizable in this rendition; report the mismatch rather
		// than silently ignoring it.
		return s.setTarget(func(t *State, v Word) ErrorCode {
			if int(v) != t.Stack.Words() {
				return InvalidOpcode
			}
			return OK
		})

	case extraGET_STACK, extraSET_STACK:
		// Mit's C implementation exposes a raw pointer to the stack's
		// backing array here. Our Stack is not a part of addressable
		// Memory, so there is no pointer value that would mean anything
		// to guest code; GET_STACK reports 0 and SET_STACK is rejected.
		if code == extraGET_STACK {
			return s.withTarget(func(t *State) (Word, ErrorCode) { return 0, OK })
		}
		return s.setTarget(func(t *State, v Word) ErrorCode { return InvalidOpcode })

	case extraSTACK_POSITION:
		handle, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		pos, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		target, err := lookupState(handle)
		if err != OK {
			return err
		}
		// Mit returns a pointer to the element; we return its value,
		// since Go does not let guest code hold a live address into
		// another state's stack safely.
		v, err := target.Stack.Peek(int(pos))
		if err != OK {
			return err
		}
		return s.Stack.Push(v)

	case extraPOP_STACK:
		handle, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		target, lookupErr := lookupState(handle)
		if lookupErr != OK {
			return s.Stack.Push(Word(lookupErr))
		}
		v, popErr := target.Stack.Pop()
		if popErr != OK {
			return s.Stack.Push(Word(popErr))
		}
		if err := s.Stack.Push(v); err != OK {
			return err
		}
		return s.Stack.Push(Word(OK))

	case extraPUSH_STACK:
		handle, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		v, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		target, lookupErr := lookupState(handle)
		if lookupErr != OK {
			return s.Stack.Push(Word(lookupErr))
		}
		return s.Stack.Push(Word(target.Stack.Push(v)))

	case extraRUN:
		handle, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		target, lookupErr := lookupState(handle)
		if lookupErr != OK {
			return s.Stack.Push(Word(lookupErr))
		}
		return s.Stack.Push(Word(target.Run()))

	case extraSINGLE_STEP:
		handle, err := s.Stack.Pop()
		if err != OK {
			return err
		}
		target, lookupErr := lookupState(handle)
		if lookupErr != OK {
			return s.Stack.Push(Word(lookupErr))
		}
		return s.Stack.Push(Word(target.SingleStep()))

	case extraARGC:
		return s.Stack.Push(Word(len(s.Args)))

	case extraARGV:
		// Guest code cannot hold a raw C-string pointer in this
		// rendition; ARGV is only meaningful together with a
		// host-provided string accessor, which this VM does not expose
		// over the stack. Push 0 (a null pointer's usual stand-in).
		return s.Stack.Push(0)

	default:
		return InvalidOpcode
	}
}

// withTarget pops a handle and pushes the result of reading one of its
// state's registers.
func (s *State) withTarget(get func(t *State) (Word, ErrorCode)) ErrorCode {
	handle, err := s.Stack.Pop()
	if err != OK {
		return err
	}
	target, err := lookupState(handle)
	if err != OK {
		return err
	}
	v, err := get(target)
	if err != OK {
		return err
	}
	return s.Stack.Push(v)
}

// setTarget pops a handle then a value, and applies set to its state.
func (s *State) setTarget(set func(t *State, v Word) ErrorCode) ErrorCode {
	handle, err := s.Stack.Pop()
	if err != OK {
		return err
	}
	v, err := s.Stack.Pop()
	if err != OK {
		return err
	}
	target, err := lookupState(handle)
	if err != OK {
		return err
	}
	return set(target, v)
}
