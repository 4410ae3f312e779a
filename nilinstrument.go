package bytebuf

type nilInstrument struct{}

func NewNilInstrument() Instrument {
	return &nilInstrument{}
}

func (self *nilInstrument) NewInstance(_ string) InstrumentInstance {
	return nilInstance
}

var nilInstance InstrumentInstance = &nilInstrumentInstance{}

type nilInstrumentInstance struct{}

func (n *nilInstrumentInstance) Allocate(size int, direct bool) {}

func (n *nilInstrumentInstance) Reuse(size int, direct bool) {}

func (n *nilInstrumentInstance) Pooled(size int, direct bool) {}

func (n *nilInstrumentInstance) Free(size int, direct bool) {}

func (n *nilInstrumentInstance) Grow(oldCapacity, newCapacity int) {}

func (n *nilInstrumentInstance) Consolidate(components, size int) {}

func (n *nilInstrumentInstance) Shutdown() {}
