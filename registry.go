package traversal

import (
	"fmt"

	"github.com/theoremus-urban-solutions/multimodal-traversal/config"
	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
	"github.com/theoremus-urban-solutions/multimodal-traversal/geofence"
	"github.com/theoremus-urban-solutions/multimodal-traversal/schedule"
)

// BuildContext hands a model builder the validated configuration plus the
// shared assets the Builder loaded up front.
type BuildContext struct {
	Config       *config.AppConfig
	Schedule     *schedule.Index
	Availability *gbfs.Cache
	Zones        *geofence.Index
}

// BuilderFunc constructs the model for one mode tag. Returning (nil, nil)
// means the tag is not configured and no model is installed; an error aborts
// the whole build.
type BuilderFunc func(ctx *BuildContext) (Model, error)

// Registry is an explicit, ordered list of (tag, builder) pairs. External
// components register additional mode models here at process startup, so
// new modes plug in without modifying this package.
type Registry struct {
	order    []string
	builders map[string]BuilderFunc
}

func NewRegistry() *Registry {
	return &Registry{builders: map[string]BuilderFunc{}}
}

// Register appends a builder under a tag. Duplicate tags are a programming
// error and are rejected.
func (r *Registry) Register(tag string, fn BuilderFunc) error {
	if tag == "" {
		return fmt.Errorf("cannot register empty model tag")
	}
	if _, ok := r.builders[tag]; ok {
		return fmt.Errorf("model tag %q already registered", tag)
	}
	r.order = append(r.order, tag)
	r.builders[tag] = fn
	return nil
}

// Has reports whether a tag is registered.
func (r *Registry) Has(tag string) bool {
	_, ok := r.builders[tag]
	return ok
}

// Tags returns the registration order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns a registry with the core mode models registered
// in their canonical order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// registration of core tags cannot collide
	_ = r.Register("street", buildStreet)
	_ = r.Register("boarding", buildBoarding)
	_ = r.Register("transit", buildTransit)
	_ = r.Register("gbfs", buildGbfs)
	_ = r.Register("geofence", buildGeofence)
	return r
}
