// Package docs provides generated OpenAPI documentation.
//
// Distanbol API
//
//	@title			Distanbol API
//	@version		1.0
//	@description	Reconciles Apache Stanbol enhancement output into entity reports.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/distanbol
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g doc.go -d ./,../internal/server/endpoints -o ./swagger --parseDependency --parseInternal
