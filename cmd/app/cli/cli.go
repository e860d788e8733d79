package cli

import (
	"context"

	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/app"
	"eldenlens.dev/backend/internal/app/appcontext"
)

func Start(module fx.Option) error {
	return app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}
