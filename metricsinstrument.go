package bytebuf

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openziti/bytebuf/cf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MetricsDatasets names the sample datasets the metrics instrument writes,
// in the layout the influx loader consumes.
var MetricsDatasets = []string{
	"allocations",
	"allocated_bytes",
	"reuses",
	"frees",
	"freed_bytes",
	"pooled",
	"grows",
	"consolidations",
}

type metricsInstrument struct {
	lock      sync.Mutex
	config    *metricsInstrumentConfig
	instances []*metricsInstrumentInstance
}

type metricsInstrumentConfig struct {
	Path       string `cf:"path"`
	SnapshotMs int    `cf:"snapshot_ms"`
	Enabled    bool   `cf:"enabled"`
}

func NewMetricsInstrument(config map[string]interface{}) (Instrument, error) {
	i := &metricsInstrument{
		config: &metricsInstrumentConfig{
			SnapshotMs: 1000,
			Enabled:    true,
		},
	}
	if err := cf.Load(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	logrus.Infof(cf.Dump("metrics", i.config))
	return i, nil
}

func (self *metricsInstrument) NewInstance(id string) InstrumentInstance {
	self.lock.Lock()
	defer self.lock.Unlock()
	ii := &metricsInstrumentInstance{
		id:     id,
		parent: self,
		config: self.config,
		close:  make(chan struct{}, 1),
	}
	go ii.snapshotter(self.config.SnapshotMs)
	self.instances = append(self.instances, ii)
	return ii
}

func (self *metricsInstrument) WriteAllSamples() error {
	self.lock.Lock()
	defer self.lock.Unlock()

	for _, ii := range self.instances {
		if err := ii.writeSamples(); err != nil {
			return err
		}
	}
	return nil
}

type metricsInstrumentInstance struct {
	id     string
	parent *metricsInstrument
	config *metricsInstrumentConfig
	close  chan struct{}
	closed bool

	lock    sync.Mutex
	samples map[string][]*Sample

	allocationsAccum    int64
	allocatedBytesAccum int64
	reusesAccum         int64
	freesAccum          int64
	freedBytesAccum     int64
	pooledAccum         int64
	growsAccum          int64
	consolidationsAccum int64
}

func (self *metricsInstrumentInstance) Allocate(size int, direct bool) {
	if self.config.Enabled {
		atomic.AddInt64(&self.allocationsAccum, 1)
		atomic.AddInt64(&self.allocatedBytesAccum, int64(size))
	}
}

func (self *metricsInstrumentInstance) Reuse(size int, direct bool) {
	if self.config.Enabled {
		atomic.AddInt64(&self.reusesAccum, 1)
	}
}

func (self *metricsInstrumentInstance) Pooled(size int, direct bool) {
	if self.config.Enabled {
		atomic.AddInt64(&self.pooledAccum, 1)
	}
}

func (self *metricsInstrumentInstance) Free(size int, direct bool) {
	if self.config.Enabled {
		atomic.AddInt64(&self.freesAccum, 1)
		atomic.AddInt64(&self.freedBytesAccum, int64(size))
	}
}

func (self *metricsInstrumentInstance) Grow(oldCapacity, newCapacity int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.growsAccum, 1)
	}
}

func (self *metricsInstrumentInstance) Consolidate(components, size int) {
	if self.config.Enabled {
		atomic.AddInt64(&self.consolidationsAccum, 1)
	}
}

func (self *metricsInstrumentInstance) Shutdown() {
	if !self.closed {
		self.closed = true
		close(self.close)
	}
	if err := self.writeSamples(); err != nil {
		logrus.Errorf("error writing samples (%v)", err)
	}
}

func (self *metricsInstrumentInstance) snapshotter(ms int) {
	logrus.Infof("started")
	defer logrus.Infof("exited")
	for {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		if self.config.Enabled {
			self.snapshot()
		}
		select {
		case <-self.close:
			self.snapshot()
			return
		default:
			//
		}
	}
}

func (self *metricsInstrumentInstance) snapshot() {
	now := time.Now()
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.samples == nil {
		self.samples = make(map[string][]*Sample)
	}
	add := func(name string, v int64) {
		self.samples[name] = append(self.samples[name], &Sample{Ts: now, V: v})
	}
	add("allocations", atomic.SwapInt64(&self.allocationsAccum, 0))
	add("allocated_bytes", atomic.SwapInt64(&self.allocatedBytesAccum, 0))
	add("reuses", atomic.SwapInt64(&self.reusesAccum, 0))
	add("frees", atomic.SwapInt64(&self.freesAccum, 0))
	add("freed_bytes", atomic.SwapInt64(&self.freedBytesAccum, 0))
	add("pooled", atomic.SwapInt64(&self.pooledAccum, 0))
	add("grows", atomic.SwapInt64(&self.growsAccum, 0))
	add("consolidations", atomic.SwapInt64(&self.consolidationsAccum, 0))
}

func (self *metricsInstrumentInstance) writeSamples() error {
	if err := os.MkdirAll(self.config.Path, os.ModePerm); err != nil {
		return err
	}
	prefix := strings.ReplaceAll(fmt.Sprintf("%s_", self.id), ":", "-")
	outPath, err := ioutil.TempDir(self.config.Path, prefix)
	if err != nil {
		return err
	}
	logrus.Infof("writing metrics to: %s", outPath)

	if err := WriteMetricsId(fmt.Sprintf("bytebuf.%d", profileVersion), outPath, map[string]string{"allocator": self.id}); err != nil {
		return err
	}
	self.lock.Lock()
	defer self.lock.Unlock()
	for _, dataset := range MetricsDatasets {
		if err := WriteSamples(dataset, outPath, self.samples[dataset]); err != nil {
			return err
		}
	}
	return nil
}
