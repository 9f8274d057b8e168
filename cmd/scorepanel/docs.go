package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/scorepanel/docs.go -d ./,./internal/httpapi,./pkg/types`.
//
// @title           scorepanel API
// @version         1.0
// @description     Read-only status API of the scoreboard panel client.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
