package simulation

import "context"

// Simulation defines the interface that all scenarios must implement
type Simulation interface {
	// Name returns the name of the scenario
	Name() string

	// Description returns a brief description of what the scenario does
	Description() string

	// Configure sets up the scenario with the provided parameters
	Configure(params map[string]interface{}) error

	// Run executes the scenario until it completes or the context is canceled
	Run(ctx context.Context) error

	// Stop gracefully shuts down the scenario
	Stop() error
}
