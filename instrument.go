package bytebuf

import "github.com/pkg/errors"

// Instrument observes allocator behavior. An Instrument is installed on an
// allocator at construction; each allocator gets its own InstrumentInstance.
type Instrument interface {
	NewInstance(id string) InstrumentInstance
}

type InstrumentInstance interface {
	// region lifecycle
	Allocate(size int, direct bool)
	Reuse(size int, direct bool)
	Pooled(size int, direct bool)
	Free(size int, direct bool)

	// buffer behavior
	Grow(oldCapacity, newCapacity int)
	Consolidate(components, size int)

	// instrument lifecycle
	Shutdown()
}

func NewInstrument(name string, config map[string]interface{}) (Instrument, error) {
	switch name {
	case "metrics":
		return NewMetricsInstrument(config)
	case "logger":
		return NewLoggerInstrument(), nil
	case "nil":
		return NewNilInstrument(), nil
	default:
		return nil, errors.Errorf("unknown instrument '%s'", name)
	}
}
