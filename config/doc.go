// Package config loads the backend and frontend service configuration from an
// optional .env file, an optional YAML file named after the service, and
// environment variables. The result is validated once at startup and passed
// to the handlers; nothing reads the environment after Load returns.
package config
