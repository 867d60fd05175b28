package server

//go:generate swag init -g internal/server/server.go -o internal/server/docs

// @title a11ylens API
// @version 0.1
// @description Run static accessibility checks against a web page and fetch WCAG reference links.
// @contact.name a11ylens Maintainers
// @contact.url https://github.com/raysh454/a11ylens
// @BasePath /
