package netlist

import (
	"fmt"

	"github.com/silogic/majsynth/utils"
)

const serializeMagic = 7592919092254534034

// Serialize converts the netlist into a deterministic byte stream for
// storage or transmission. Two identical netlists serialize to identical
// bytes.
func (nl *Netlist) Serialize() []byte {
	o := utils.OutputBuf{}
	o.AppendUint64(serializeMagic)
	o.AppendString(nl.Name)
	o.AppendUint64(uint64(nl.NbInputs))
	o.AppendUint64(uint64(len(nl.Arena.Signals)))
	for _, s := range nl.Arena.Signals {
		o.AppendUint8(uint8(s.Kind))
		o.AppendUint64(uint64(s.Index))
		o.AppendUint64(uint64(s.Column))
		o.AppendUint64(uint64(s.Level))
		o.AppendBool(s.Named)
		o.AppendString(s.Name)
	}
	o.AppendUint64(uint64(len(nl.Inputs)))
	for _, id := range nl.Inputs {
		o.AppendUint64(uint64(id))
	}
	o.AppendUint64(uint64(len(nl.Const1s)))
	for _, id := range nl.Const1s {
		o.AppendUint64(uint64(id))
	}
	o.AppendUint64(uint64(len(nl.Ops)))
	for _, op := range nl.Ops {
		o.AppendUint64(uint64(op.A))
		o.AppendUint64(uint64(op.B))
		o.AppendUint64(uint64(op.Cin))
		o.AppendUint64(uint64(op.Sum))
		o.AppendUint64(uint64(op.Cout))
		o.AppendUint64(uint64(op.Column))
		o.AppendUint64(uint64(op.Level))
		o.AppendUint8(uint8(op.Kind))
		o.AppendUint8(uint8(op.Stage))
	}
	o.AppendUint64(uint64(nl.MajSignal))
	return o.Bytes()
}

// Deserialize reconstructs a netlist from its serialized form.
func Deserialize(buf []byte) (*Netlist, error) {
	in := utils.NewInputBuf(buf)
	if in.ReadUint64() != serializeMagic {
		return nil, fmt.Errorf("netlist: invalid file header")
	}
	nl := &Netlist{Arena: NewArena()}
	nl.Name = in.ReadString()
	nl.NbInputs = int(in.ReadUint64())
	nbSignals := in.ReadUint64()
	nl.Arena.Signals = make([]Signal, nbSignals)
	for i := uint64(0); i < nbSignals; i++ {
		s := Signal{}
		s.Kind = SignalKind(in.ReadUint8())
		s.Index = int(in.ReadUint64())
		s.Column = int(in.ReadUint64())
		s.Level = int(in.ReadUint64())
		s.Named = in.ReadBool()
		s.Name = in.ReadString()
		nl.Arena.Signals[i] = s
	}
	nbInputs := in.ReadUint64()
	nl.Inputs = make([]int, nbInputs)
	for i := uint64(0); i < nbInputs; i++ {
		nl.Inputs[i] = int(in.ReadUint64())
	}
	nbConst1s := in.ReadUint64()
	nl.Const1s = make([]int, nbConst1s)
	for i := uint64(0); i < nbConst1s; i++ {
		nl.Const1s[i] = int(in.ReadUint64())
	}
	nbOps := in.ReadUint64()
	nl.Ops = make([]FullAdder, nbOps)
	for i := uint64(0); i < nbOps; i++ {
		op := FullAdder{}
		op.A = int(in.ReadUint64())
		op.B = int(in.ReadUint64())
		op.Cin = int(in.ReadUint64())
		op.Sum = int(in.ReadUint64())
		op.Cout = int(in.ReadUint64())
		op.Column = int(in.ReadUint64())
		op.Level = int(in.ReadUint64())
		op.Kind = OpKind(in.ReadUint8())
		op.Stage = Stage(in.ReadUint8())
		nl.Ops[i] = op
	}
	nl.MajSignal = int(in.ReadUint64())
	if in.Remaining() != 0 {
		return nil, fmt.Errorf("netlist: %d trailing bytes after deserialization", in.Remaining())
	}
	if err := Validate(nl); err != nil {
		return nil, err
	}
	return nl, nil
}
