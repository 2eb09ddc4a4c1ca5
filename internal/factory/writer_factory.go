package factory

import (
	"fmt"

	"FlowTally/internal/config"
	"FlowTally/internal/model"
)

// WriterFactory defines a function that creates a writer from the config.
type WriterFactory func(cfg *config.Config) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// Register registers a new writer type with its factory function.
func Register(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// Create creates one writer per configured type.
func Create(cfg *config.Config) ([]model.Writer, error) {
	var writers []model.Writer

	for _, writerType := range cfg.Writers.Types {
		factory, ok := registry[writerType]
		if !ok {
			return nil, fmt.Errorf("unknown writer type: '%s'", writerType)
		}

		writer, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("error creating writer type '%s': %w", writerType, err)
		}
		writers = append(writers, writer)
	}

	return writers, nil
}
