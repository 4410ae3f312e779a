package bytebuf

import (
	"github.com/openziti/bytebuf/cf"
	"github.com/pkg/errors"
)

const profileVersion = 1

// Profile carries the tunable allocation policy. Everything here is policy,
// not contract: the defaults in NewBaselineProfile are starting points.
type Profile struct {
	PoolMinChunk  int    `cf:"pool_min_chunk"`
	PoolMaxChunk  int    `cf:"pool_max_chunk"`
	PoolDepth     int    `cf:"pool_depth"`
	MaxComponents int    `cf:"max_components"`
	Instrument    string `cf:"instrument"`
}

func NewBaselineProfile() *Profile {
	return &Profile{
		PoolMinChunk:  1024,
		PoolMaxChunk:  4 * 1024 * 1024,
		PoolDepth:     64,
		MaxComponents: defaultMaxComponents,
		Instrument:    "nil",
	}
}

func (self *Profile) Load(data map[string]interface{}) error {
	if v, found := data["profile_version"]; found {
		if i, ok := v.(int); ok {
			if i != profileVersion {
				return errors.Wrapf(ErrInvalidArgument, "profile version [%d != %d]", i, profileVersion)
			}
		} else {
			return errors.Wrap(ErrInvalidArgument, "invalid 'profile_version' value")
		}
	} else {
		return errors.Wrap(ErrInvalidArgument, "missing 'profile_version'")
	}
	return cf.Load(data, self)
}

func (self *Profile) Dump() string {
	return cf.Dump("profile", self)
}
