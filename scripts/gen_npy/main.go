package main

import (
	"encoding/binary"
	"os"
	"strings"
)

// Standalone golden generator: writes an int32 NPY file by hand, without
// the internal/npy package, so the reader can be checked against bytes it
// did not produce itself.
func main() {
	f, _ := os.Create("golden_i4.npy")
	defer func() { _ = f.Close() }()

	// Magic \x93NUMPY
	_, _ = f.Write([]byte("\x93NUMPY"))
	// Version 1.0
	_, _ = f.Write([]byte{1, 0})

	dict := "{'descr': '<i4', 'fortran_order': False, 'shape': (8,), }"
	// Prefix: 6(magic)+2(version)+2(len) = 10 bytes.
	// 10 + 57(dict) + 1(newline) = 68. Next multiple of 64 is 128. Pad 60.
	pad := 60
	_ = binary.Write(f, binary.LittleEndian, uint16(len(dict)+pad+1))
	_, _ = f.WriteString(dict)
	_, _ = f.WriteString(strings.Repeat(" ", pad))
	_, _ = f.WriteString("\n")

	// Data: 0..7 (int32, little-endian)
	for i := int32(0); i < 8; i++ {
		_ = binary.Write(f, binary.LittleEndian, i)
	}
}
