package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "quatet"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)
