// Package config handles traversal-model configuration loading and
// validation.
//
// Configuration is loaded from config.yml and validated using struct tags
// before any model is built; a bad section fails the load with the offending
// key rather than surfacing later during a search.
package config
