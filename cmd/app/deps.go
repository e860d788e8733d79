package app

import (
	"go.uber.org/fx"

	cliapp "eldenlens.dev/backend/cmd/app/cli"
)

// depsFn defers building the dependency graph until a command actually runs.
func depsFn[T any]() func() (T, error) {
	return func() (T, error) {
		var deps T
		err := cliapp.Start(fx.Populate(&deps))
		return deps, err
	}
}
