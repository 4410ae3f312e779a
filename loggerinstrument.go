package bytebuf

import "github.com/sirupsen/logrus"

type loggerInstrument struct{}

func NewLoggerInstrument() Instrument {
	return &loggerInstrument{}
}

func (self *loggerInstrument) NewInstance(id string) InstrumentInstance {
	return &loggerInstrumentInstance{id: id}
}

type loggerInstrumentInstance struct {
	id string
}

func (self *loggerInstrumentInstance) Allocate(size int, direct bool) {
	logrus.WithField("context", self.id).Warnf("allocate [%d/%s]", size, kind(direct))
}

func (self *loggerInstrumentInstance) Reuse(size int, direct bool) {
	logrus.WithField("context", self.id).Infof("reuse [%d/%s]", size, kind(direct))
}

func (self *loggerInstrumentInstance) Pooled(size int, direct bool) {
	logrus.WithField("context", self.id).Infof("pooled [%d/%s]", size, kind(direct))
}

func (self *loggerInstrumentInstance) Free(size int, direct bool) {
	logrus.WithField("context", self.id).Infof("free [%d/%s]", size, kind(direct))
}

func (self *loggerInstrumentInstance) Grow(oldCapacity, newCapacity int) {
	logrus.WithField("context", self.id).Infof("grow [%d -> %d]", oldCapacity, newCapacity)
}

func (self *loggerInstrumentInstance) Consolidate(components, size int) {
	logrus.WithField("context", self.id).Infof("consolidate [%d components, %d bytes]", components, size)
}

func (self *loggerInstrumentInstance) Shutdown() {
	logrus.WithField("context", self.id).Info("shutdown")
}

func kind(direct bool) string {
	if direct {
		return "direct"
	}
	return "heap"
}
