package utils

import "encoding/binary"

// OutputBuf accumulates a little-endian byte stream for deterministic
// serialization. Identical append sequences produce identical bytes.
type OutputBuf struct {
	buf []byte
}

func (o *OutputBuf) AppendUint8(x uint8) {
	o.buf = append(o.buf, x)
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, x)
}

func (o *OutputBuf) AppendBool(x bool) {
	if x {
		o.buf = append(o.buf, 1)
	} else {
		o.buf = append(o.buf, 0)
	}
}

// AppendString writes a uint64 length prefix followed by the raw bytes.
func (o *OutputBuf) AppendString(s string) {
	o.AppendUint64(uint64(len(s)))
	o.buf = append(o.buf, s...)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

type InputBuf struct {
	buf []byte
}

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) ReadUint8() uint8 {
	x := i.buf[0]
	i.buf = i.buf[1:]
	return x
}

func (i *InputBuf) ReadUint32() uint32 {
	x := binary.LittleEndian.Uint32(i.buf[:4])
	i.buf = i.buf[4:]
	return x
}

func (i *InputBuf) ReadUint64() uint64 {
	x := binary.LittleEndian.Uint64(i.buf[:8])
	i.buf = i.buf[8:]
	return x
}

func (i *InputBuf) ReadBool() bool {
	return i.ReadUint8() != 0
}

func (i *InputBuf) ReadString() string {
	n := i.ReadUint64()
	s := string(i.buf[:n])
	i.buf = i.buf[n:]
	return s
}

func (i *InputBuf) Remaining() int {
	return len(i.buf)
}
