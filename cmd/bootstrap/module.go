package bootstrap

import (
	"save-serve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.InfraModule,
	DBModule,
	JWTModule,
	components.UseCaseModule,
	components.JobsModule,
	components.HandlerModule,
)
