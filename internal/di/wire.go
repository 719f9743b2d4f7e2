//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/ripu1821/mobile-auth-service/internal/app"
)

func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		InfraSet,
		SecuritySet,
		RepositorySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}
