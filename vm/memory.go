package mit

import "encoding/binary"

// Memory is a byte-addressable buffer with aligned multi-width accessors
// (§4.C). Its size is always a multiple of wordBytes.
type Memory struct {
	bytes []byte
}

// NewMemory allocates a memory buffer of the given size in bytes, rounded
// up to the next word boundary.
func NewMemory(size int) *Memory {
	if rem := size % wordBytes; rem != 0 {
		size += wordBytes - rem
	}
	return &Memory{bytes: make([]byte, size)}
}

// Len returns the memory size in bytes.
func (m *Memory) Len() int {
	return len(m.bytes)
}

// Bytes exposes the raw buffer, e.g. for the object-file collaborator.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

func (m *Memory) inRange(addr Word, width int) bool {
	if addr < 0 {
		return false
	}
	end := int64(addr) + int64(width)
	return end <= int64(len(m.bytes))
}

// Byte reads a single byte; out-of-range addresses fail with
// InvalidMemoryRead. Byte access carries no alignment requirement.
func (m *Memory) Byte(addr Word) (byte, ErrorCode) {
	if !m.inRange(addr, 1) {
		return 0, InvalidMemoryRead
	}
	return m.bytes[addr], OK
}

// SetByte writes a single byte; out-of-range addresses fail with
// InvalidMemoryWrite.
func (m *Memory) SetByte(addr Word, v byte) ErrorCode {
	if !m.inRange(addr, 1) {
		return InvalidMemoryWrite
	}
	m.bytes[addr] = v
	return OK
}

// Load reads a width-aligned value (width 1, 2, 4 or wordBytes) at addr,
// little-endian. A read at the native word width is sign-extended to a
// Word, matching the machine word's own signedness; a read strictly
// narrower than the native word (LOAD1/LOAD2/LOAD4) is zero-extended, as
// the original always treats sub-word loads as unsigned.
func (m *Memory) Load(addr Word, width int) (Word, ErrorCode) {
	if width != 1 && int(addr)%width != 0 {
		return 0, UnalignedAddress
	}
	if !m.inRange(addr, width) {
		return 0, InvalidMemoryRead
	}
	if width == wordBytes {
		return m.loadWord(addr)
	}
	switch width {
	case 1:
		return Word(m.bytes[addr]), OK
	case 2:
		return Word(binary.LittleEndian.Uint16(m.bytes[addr:])), OK
	case 4:
		return Word(binary.LittleEndian.Uint32(m.bytes[addr:])), OK
	default:
		return 0, InvalidMemoryRead
	}
}

// Store writes the low width*8 bits of v, width-aligned, little-endian.
func (m *Memory) Store(addr Word, v Word, width int) ErrorCode {
	if width != 1 && int(addr)%width != 0 {
		return UnalignedAddress
	}
	if !m.inRange(addr, width) {
		return InvalidMemoryWrite
	}
	switch width {
	case 1:
		m.bytes[addr] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(m.bytes[addr:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(m.bytes[addr:], uint32(v))
	default:
		m.storeWord(addr, v)
	}
	return OK
}

func (m *Memory) loadWord(addr Word) (Word, ErrorCode) {
	if wordBytes == 8 {
		return Word(int64(binary.LittleEndian.Uint64(m.bytes[addr:]))), OK
	}
	return Word(int32(binary.LittleEndian.Uint32(m.bytes[addr:]))), OK
}

func (m *Memory) storeWord(addr Word, v Word) {
	if wordBytes == 8 {
		binary.LittleEndian.PutUint64(m.bytes[addr:], uint64(v))
	} else {
		binary.LittleEndian.PutUint32(m.bytes[addr:], uint32(v))
	}
}

// LoadWord and StoreWord are Load/Store specialised to the machine word
// width, used throughout the interpreter and assembler.
func (m *Memory) LoadWord(addr Word) (Word, ErrorCode) {
	return m.Load(addr, wordBytes)
}

func (m *Memory) StoreWord(addr Word, v Word) ErrorCode {
	return m.Store(addr, v, wordBytes)
}
