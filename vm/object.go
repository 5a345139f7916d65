package mit

import (
	"encoding/binary"
	"fmt"
)

// objectMagic identifies a Mit object file, grounded on the teacher's own
// convention of a small fixed header ahead of a raw memory image
// (original_source/tests/save_object.py exercises exactly this round trip).
const objectMagic uint32 = 0x4d495430 // "MIT0"

// ObjectHeader is the fixed-size preamble of a saved region: magic, the
// word size it was saved under, the region's base address, and its length
// in bytes.
type ObjectHeader struct {
	Magic       uint32
	WordBytes   uint32
	BaseAddress uint32
	Length      uint32
}

const objectHeaderSize = 16

// SaveObject serialises the memory region [addr, addr+length) into a
// self-describing byte slice. Returns an error if the region is out of
// range.
func SaveObject(mem *Memory, addr, length Word) ([]byte, error) {
	if addr < 0 || length < 0 || !mem.inRange(addr, int(length)) {
		return nil, fmt.Errorf("mit: save_object: region [%d, %d) out of range", addr, addr+length)
	}
	buf := make([]byte, objectHeaderSize+int(length))
	binary.LittleEndian.PutUint32(buf[0:], objectMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(wordBytes))
	binary.LittleEndian.PutUint32(buf[8:], uint32(addr))
	binary.LittleEndian.PutUint32(buf[12:], uint32(length))
	copy(buf[objectHeaderSize:], mem.bytes[addr:int(addr)+int(length)])
	return buf, nil
}

// LoadObject parses a saved region and writes it back at its recorded base
// address, returning the header. It rejects a word-size mismatch between
// the file and this build: a 64-bit word image cannot be replayed onto a
// 32-bit VM and vice versa (original_source/tests/save_object.py's
// negative-address/length cases are the direct ancestor of this
// validation).
func LoadObject(mem *Memory, data []byte) (ObjectHeader, error) {
	var hdr ObjectHeader
	if len(data) < objectHeaderSize {
		return hdr, fmt.Errorf("mit: load_object: truncated header")
	}
	hdr.Magic = binary.LittleEndian.Uint32(data[0:])
	hdr.WordBytes = binary.LittleEndian.Uint32(data[4:])
	hdr.BaseAddress = binary.LittleEndian.Uint32(data[8:])
	hdr.Length = binary.LittleEndian.Uint32(data[12:])
	if hdr.Magic != objectMagic {
		return hdr, fmt.Errorf("mit: load_object: bad magic %#x", hdr.Magic)
	}
	if hdr.WordBytes != uint32(wordBytes) {
		return hdr, fmt.Errorf("mit: load_object: word size %d does not match this build's %d", hdr.WordBytes, wordBytes)
	}
	payload := data[objectHeaderSize:]
	if uint32(len(payload)) < hdr.Length {
		return hdr, fmt.Errorf("mit: load_object: truncated payload")
	}
	addr, length := Word(hdr.BaseAddress), Word(hdr.Length)
	if addr < 0 || length < 0 || !mem.inRange(addr, int(length)) {
		return hdr, fmt.Errorf("mit: load_object: region [%d, %d) out of range", addr, addr+length)
	}
	copy(mem.bytes[addr:int(addr)+int(length)], payload[:hdr.Length])
	return hdr, nil
}
