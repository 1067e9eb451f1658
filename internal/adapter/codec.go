package adapter

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	m "github.com/mouse-blink/simwright/internal/model"
)

// Instruction records are fixed-size: a little-endian 16-bit opcode, the
// true and false branch bytes, then the operand block whose width depends
// on the container's format version.

const recordHeaderSize = 4

// EncodeInstruction serializes one instruction record.
func EncodeInstruction(format m.FormatVersion, in m.Instruction) ([]byte, error) {
	if err := ValidateRecord(format, in); err != nil {
		return nil, err
	}

	buf := make([]byte, recordHeaderSize+format.OperandWidth())
	binary.LittleEndian.PutUint16(buf[0:2], in.Opcode)
	buf[2] = byte(in.TrueTarget)
	buf[3] = byte(in.FalseTarget)
	copy(buf[recordHeaderSize:], in.Operand)

	return buf, nil
}

// DecodeInstruction parses one instruction record. Decoding never fails on
// a well-formed fixed-size record; only a short read is an error.
func DecodeInstruction(format m.FormatVersion, raw []byte) (m.Instruction, error) {
	want := recordHeaderSize + format.OperandWidth()
	if len(raw) < want {
		return m.Instruction{}, fmt.Errorf("instruction record is %d bytes, %s format requires %d", len(raw), format, want)
	}

	return m.Instruction{
		Opcode:      binary.LittleEndian.Uint16(raw[0:2]),
		TrueTarget:  m.BranchTarget(raw[2]),
		FalseTarget: m.BranchTarget(raw[3]),
		Operand:     append([]byte(nil), raw[recordHeaderSize:want]...),
	}, nil
}

// Container file layout: magic, format byte, routine count, then each
// routine as id, name, arg/local counts, instruction count and records.
var containerMagic = []byte("SWC1")

// ContainerStore reads and writes container files. It hides direct os
// access so domain logic can be tested against in-memory containers.
type ContainerStore interface {
	Load(path string) (*MemContainer, error)
	Save(path string, c *MemContainer) error
}

type containerStore struct{}

// NewContainerStore constructs the file-backed ContainerStore.
func NewContainerStore() ContainerStore {
	return &containerStore{}
}

func (s *containerStore) Load(path string) (*MemContainer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}

	return decodeContainer(path, raw)
}

func (s *containerStore) Save(path string, c *MemContainer) error {
	var buf bytes.Buffer
	if err := encodeContainer(&buf, c); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write container: %w", err)
	}

	return nil
}

func decodeContainer(path string, raw []byte) (*MemContainer, error) {
	r := bytes.NewReader(raw)

	magic := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(r, magic); err != nil || !bytes.Equal(magic, containerMagic) {
		return nil, fmt.Errorf("%s is not a container file", path)
	}

	var header struct {
		Format uint8
		Count  uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("truncated container header: %w", err)
	}

	format := m.FormatVersion(header.Format)
	if format != m.FormatClassic && format != m.FormatExtended {
		return nil, fmt.Errorf("unsupported container format %d", header.Format)
	}

	c := NewMemContainer(path, format)

	for i := 0; i < int(header.Count); i++ {
		routine, err := decodeRoutine(r, format)
		if err != nil {
			return nil, fmt.Errorf("routine %d of %d: %w", i+1, header.Count, err)
		}

		c.Put(routine)
	}

	return c, nil
}

func decodeRoutine(r *bytes.Reader, format m.FormatVersion) (*m.Routine, error) {
	var header struct {
		ID         uint16
		NameLen    uint8
		ArgCount   uint8
		LocalCount uint8
		InstrCount uint8
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("truncated routine header: %w", err)
	}

	name := make([]byte, header.NameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("truncated routine name: %w", err)
	}

	routine := &m.Routine{
		ID:         m.RoutineID(header.ID),
		Name:       string(name),
		Format:     format,
		ArgCount:   int(header.ArgCount),
		LocalCount: int(header.LocalCount),
	}

	recordSize := recordHeaderSize + format.OperandWidth()
	record := make([]byte, recordSize)

	for i := 0; i < int(header.InstrCount); i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("truncated instruction %d: %w", i, err)
		}

		in, err := DecodeInstruction(format, record)
		if err != nil {
			return nil, err
		}

		routine.Instructions = append(routine.Instructions, in)
	}

	return routine, nil
}

func encodeContainer(w io.Writer, c *MemContainer) error {
	if _, err := w.Write(containerMagic); err != nil {
		return err
	}

	routines := c.Routines()

	header := struct {
		Format uint8
		Count  uint16
	}{Format: uint8(c.Format()), Count: uint16(len(routines))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	for _, routine := range routines {
		if err := encodeRoutine(w, c.Format(), routine); err != nil {
			return fmt.Errorf("routine %#04x: %w", routine.ID, err)
		}
	}

	return nil
}

func encodeRoutine(w io.Writer, format m.FormatVersion, routine *m.Routine) error {
	if len(routine.Name) > 0xFF {
		return fmt.Errorf("routine name exceeds %d bytes", 0xFF)
	}

	if len(routine.Instructions) > 0xFF {
		return fmt.Errorf("routine has %d instructions, limit is %d", len(routine.Instructions), 0xFF)
	}

	header := struct {
		ID         uint16
		NameLen    uint8
		ArgCount   uint8
		LocalCount uint8
		InstrCount uint8
	}{
		ID:         uint16(routine.ID),
		NameLen:    uint8(len(routine.Name)),
		ArgCount:   uint8(routine.ArgCount),
		LocalCount: uint8(routine.LocalCount),
		InstrCount: uint8(len(routine.Instructions)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	if _, err := w.Write([]byte(routine.Name)); err != nil {
		return err
	}

	for _, in := range routine.Instructions {
		record, err := EncodeInstruction(format, in)
		if err != nil {
			return err
		}

		if _, err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
