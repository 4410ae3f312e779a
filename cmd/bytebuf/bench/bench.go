package bench

import (
	"io/ioutil"
	"time"

	"github.com/openziti/bytebuf"
	"github.com/openziti/bytebuf/cf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func bench(_ *cobra.Command, _ []string) {
	p, instrumentConfig, err := loadProfile()
	if err != nil {
		logrus.Fatalf("error loading profile (%v)", err)
	}
	logrus.Infof(p.Dump())

	instrument, err := bytebuf.NewInstrument(p.Instrument, instrumentConfig)
	if err != nil {
		logrus.Fatalf("error creating instrument (%v)", err)
	}

	var alloc bytebuf.Allocator
	if unpooled {
		alloc = bytebuf.NewUnpooledAllocator(instrument)
	} else {
		alloc, err = bytebuf.NewPooledAllocator(p, instrument)
		if err != nil {
			logrus.Fatalf("error creating allocator (%v)", err)
		}
	}

	payload := make([]byte, size)
	start := time.Now()
	for i := 0; i < count; i++ {
		buf, err := alloc.Allocate(size, 2*size, direct)
		if err != nil {
			logrus.Fatalf("error allocating (%v)", err)
		}
		if err := buf.WriteBytes(payload); err != nil {
			logrus.Fatalf("error writing (%v)", err)
		}
		if _, err := buf.ReadBytes(size); err != nil {
			logrus.Fatalf("error reading (%v)", err)
		}
		if err := buf.Release(); err != nil {
			logrus.Fatalf("error releasing (%v)", err)
		}
	}
	elapsed := time.Since(start)
	logrus.Infof("[%d] cycles of [%d] bytes in %s (%.2f MB/sec)", count, size, elapsed,
		(float64(count)*float64(size))/elapsed.Seconds()/(1024.0*1024.0))

	if writer, ok := instrument.(interface{ WriteAllSamples() error }); ok {
		if err := writer.WriteAllSamples(); err != nil {
			logrus.Errorf("error writing samples (%v)", err)
		}
	}
}

func loadProfile() (*bytebuf.Profile, map[string]interface{}, error) {
	p := bytebuf.NewBaselineProfile()
	instrumentConfig := make(map[string]interface{})
	if profilePath == "" {
		return p, instrumentConfig, nil
	}
	data, err := ioutil.ReadFile(profilePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read profile")
	}
	dataMap := make(map[interface{}]interface{})
	if err := yaml.Unmarshal(data, dataMap); err != nil {
		return nil, nil, errors.Wrap(err, "unmarshal profile")
	}
	cleaned := cf.MapIToMapS(dataMap)
	if err := p.Load(cleaned); err != nil {
		return nil, nil, errors.Wrap(err, "load profile")
	}
	if v, found := cleaned["instrument_config"]; found {
		if m, ok := v.(map[string]interface{}); ok {
			instrumentConfig = m
		}
	}
	return p, instrumentConfig, nil
}
