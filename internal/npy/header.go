package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	magicPrefix = "\x93NUMPY"
	headerAlign = 64

	maxHeaderLenV1 = 0xFFFF
)

// Header carries the metadata stored in an NPY file prefix: element
// type, storage layout and shape. An empty shape denotes a scalar.
type Header struct {
	DType        DType
	FortranOrder bool
	Shape        []int
}

// String renders the header as the Python dict literal stored on disk.
func (h *Header) String() string {
	return h.dict()
}

func (h *Header) dict() string {
	return fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }",
		h.DType.Descr(), pyBool(h.FortranOrder), pyShape(h.Shape))
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// pyShape renders a shape the way Python repr renders a tuple: single
// dimensions keep the trailing comma, as in "(8,)".
func pyShape(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// encode serializes magic, version, length and the padded dict. The
// dict is padded with spaces and a final newline so the data section
// starts on a 64-byte boundary, matching numpy.lib.format. Version 1.0
// is used unless the dict overflows its 16-bit length field, in which
// case the 32-bit version 2.0 prefix takes over.
func (h *Header) encode() []byte {
	d := h.dict()
	prefix := len(magicPrefix) + 2 + 2
	padlen := headerAlign - (prefix+len(d)+1)%headerAlign
	hlen := len(d) + 1 + padlen
	version := byte(1)
	if hlen > maxHeaderLenV1 {
		prefix = len(magicPrefix) + 2 + 4
		padlen = headerAlign - (prefix+len(d)+1)%headerAlign
		hlen = len(d) + 1 + padlen
		version = 2
	}

	buf := make([]byte, 0, prefix+hlen)
	buf = append(buf, magicPrefix...)
	buf = append(buf, version, 0)
	if version == 1 {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(hlen))
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(hlen))
	}
	buf = append(buf, d...)
	for i := 0; i < padlen; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, '\n')
	return buf
}

// readHeader consumes and parses the NPY prefix from r, leaving the
// reader positioned at the first data byte.
func readHeader(r io.Reader) (*Header, error) {
	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(pre[:6]) != magicPrefix {
		return nil, ErrInvalidMagic{Magic: append([]byte(nil), pre[:6]...)}
	}
	major, minor := pre[6], pre[7]

	var hlen int
	switch major {
	case 1:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("reading header length: %w", err)
		}
		hlen = int(v)
	case 2:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("reading header length: %w", err)
		}
		hlen = int(v)
	default:
		return nil, ErrUnsupportedVersion{Major: major, Minor: minor}
	}

	raw := make([]byte, hlen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("reading header dict: %w", err)
	}
	return parseHeaderDict(string(raw))
}

var (
	descrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

func parseHeaderDict(dict string) (*Header, error) {
	m := descrRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, ErrBadHeader{Reason: "missing descr"}
	}
	d, err := ParseDescr(m[1])
	if err != nil {
		return nil, err
	}

	m = fortranRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, ErrBadHeader{Reason: "missing fortran_order"}
	}
	fortran := m[1] == "True"

	m = shapeRe.FindStringSubmatch(dict)
	if m == nil {
		return nil, ErrBadHeader{Reason: "missing shape"}
	}
	shape, err := parseShape(m[1])
	if err != nil {
		return nil, err
	}

	return &Header{DType: d, FortranOrder: fortran, Shape: shape}, nil
}

func parseShape(inner string) ([]int, error) {
	var shape []int
	for _, f := range strings.Split(inner, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, ErrBadHeader{Reason: fmt.Sprintf("bad shape entry %q", f)}
		}
		if d < 0 {
			return nil, ErrBadHeader{Reason: fmt.Sprintf("negative dimension %d", d)}
		}
		shape = append(shape, d)
	}
	return shape, nil
}
