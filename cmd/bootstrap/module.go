package bootstrap

import (
	"secondhand-market/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	KafkaModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	NotifierModule,
)
