// Package main содержит точку входа клиентского CLI-приложения notebook.
//
// Пакет передаёт в CLI-слой версию и дату сборки.
package main

import "github.com/mustafaciftc/notebook-app/internal/client/cli"

var (
	// buildVersion задаётся при сборке через -ldflags "-X main.buildVersion=...".
	buildVersion = "dev"
	// buildDate задаётся при сборке через -ldflags "-X main.buildDate=...".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
