package npy

import "fmt"

// DType identifies one of the twelve fixed-width element types the NPY
// codec handles. The zero value is Int8.
type DType uint8

const (
	Int8 DType = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

// DTypes returns all supported element types in canonical order:
// signed ints by width, unsigned ints by width, floats, complex.
func DTypes() []DType {
	return []DType{
		Int8, Int16, Int32, Int64,
		Uint8, Uint16, Uint32, Uint64,
		Float32, Float64,
		Complex64, Complex128,
	}
}

// Kind returns the NumPy kind character: 'i', 'u', 'f' or 'c'.
func (d DType) Kind() byte {
	switch d {
	case Int8, Int16, Int32, Int64:
		return 'i'
	case Uint8, Uint16, Uint32, Uint64:
		return 'u'
	case Float32, Float64:
		return 'f'
	case Complex64, Complex128:
		return 'c'
	default:
		return '?'
	}
}

// Size returns the element width in bytes, or 0 for an unknown type.
func (d DType) Size() int {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// Code returns the short kind+width code used in fixture file names,
// e.g. "i4" for Int32 or "c16" for Complex128.
func (d DType) Code() string {
	if d.Size() == 0 {
		return fmt.Sprintf("unknown_%d", d)
	}
	return fmt.Sprintf("%c%d", d.Kind(), d.Size())
}

// Descr returns the NumPy descr string for a little-endian element,
// e.g. "<i4". Single-byte types carry the '|' no-byte-order prefix.
func (d DType) Descr() string {
	if d.Size() == 0 {
		return fmt.Sprintf("unknown_%d", d)
	}
	if d.Size() == 1 {
		return "|" + d.Code()
	}
	return "<" + d.Code()
}

func (d DType) String() string {
	return d.Code()
}

var codeToDType = map[string]DType{
	"i1": Int8, "i2": Int16, "i4": Int32, "i8": Int64,
	"u1": Uint8, "u2": Uint16, "u4": Uint32, "u8": Uint64,
	"f4": Float32, "f8": Float64,
	"c8": Complex64, "c16": Complex128,
}

// ParseCode resolves a bare kind+width code such as "f8".
func ParseCode(code string) (DType, error) {
	d, ok := codeToDType[code]
	if !ok {
		return 0, ErrUnsupportedDType{Descr: code}
	}
	return d, nil
}

// ParseDescr resolves a NumPy descr string such as "<i4" or "|u1".
// Big-endian descrs are rejected: the codec is little-endian only.
func ParseDescr(descr string) (DType, error) {
	if descr == "" {
		return 0, ErrUnsupportedDType{Descr: descr}
	}
	code := descr
	switch descr[0] {
	case '>':
		return 0, ErrBigEndian{Descr: descr}
	case '<', '|', '=':
		code = descr[1:]
	}
	d, ok := codeToDType[code]
	if !ok {
		return 0, ErrUnsupportedDType{Descr: descr}
	}
	return d, nil
}

// Error types
type ErrInvalidMagic struct{ Magic []byte }

func (e ErrInvalidMagic) Error() string {
	return fmt.Sprintf("invalid NPY magic: %q", e.Magic)
}

type ErrUnsupportedVersion struct{ Major, Minor uint8 }

func (e ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported NPY version: %d.%d", e.Major, e.Minor)
}

type ErrBigEndian struct{ Descr string }

func (e ErrBigEndian) Error() string {
	return fmt.Sprintf("big-endian data not supported: %s", e.Descr)
}

type ErrUnsupportedDType struct{ Descr string }

func (e ErrUnsupportedDType) Error() string {
	return fmt.Sprintf("unsupported dtype: %s", e.Descr)
}

type ErrBadHeader struct{ Reason string }

func (e ErrBadHeader) Error() string {
	return fmt.Sprintf("malformed NPY header: %s", e.Reason)
}
