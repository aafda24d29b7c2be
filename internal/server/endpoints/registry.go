package endpoints

import (
	"github.com/jackzampolin/distanbol/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Conversion endpoints
		&FormEndpoint{},
		&ConvertFormEndpoint{},
		&ConvertURLEndpoint{},
		&APIConvertEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files
		&StaticEndpoint{},
	}
}
