// Package cli реализует командный интерфейс клиента notebook.
//
// Команды: это "экраны" приложения: каждая вызывает операцию контейнера
// состояния (state.Auth или state.Notes), печатает итоговое сообщение и
// сбрасывает флаги контейнера.
//
// Точка входа пакета: функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mustafaciftc/notebook-app/internal/client/state"
	"github.com/mustafaciftc/notebook-app/internal/client/store"
)

// DefaultServerURL: адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:5000"

// EnvServerURL переопределяет адрес сервера по умолчанию.
const EnvServerURL = "NOTEBOOK_SERVER"

// App содержит состояние CLI, разделяемое между командами.
//
// Тесты заполняют Store (и при желании контейнеры) заранее, тогда setup
// их не пересоздаёт.
type App struct {
	// ServerURL: базовый URL сервера (например, "http://127.0.0.1:5000").
	ServerURL string
	// StorePath: путь к файлу учётных данных. Если пусто, путь по умолчанию.
	StorePath string

	Store store.Store
	Auth  *state.Auth
	Notes *state.Notes
}

// setup создаёт хранилище и контейнеры и восстанавливает сессию.
func (a *App) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if a.Store == nil {
		path := a.StorePath
		if path == "" {
			p, err := store.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		a.StorePath = path
		a.Store = NewStore(path)
	}

	if a.Auth == nil || a.Notes == nil {
		c := NewAPIClient(a.ServerURL)
		if a.Auth == nil {
			a.Auth = state.NewAuth(c, a.Store)
		}
		if a.Notes == nil {
			a.Notes = state.NewNotes(c, a.Store)
		}
	}

	// битый файл не мешает работать: пользователь просто не залогинен
	if err := a.Auth.LoadStoredCredentials(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	a.Auth.Reset()
	return nil
}

func defaultServerURL() string {
	if v := os.Getenv(EnvServerURL); v != "" {
		return v
	}
	return DefaultServerURL
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}
	return newRootCmd(app, buildVersion, buildDate)
}

func newRootCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebook",
		Short: "notebook CLI: заметки с авторизацией",
		Long: `notebook CLI.

Команды:
  register  Регистрация нового пользователя
  login     Вход (токен сохраняется локально)
  logout    Выход (токен удаляется)
  whoami    Текущий пользователь
  notes     Работа с заметками (list, add, show, edit, delete)
  version   Версия и дата сборки

Примеры:
  notebook register --name Ayşe --email ayse@example.com
  notebook login --email ayse@example.com
  notebook notes add --title "Alışveriş" --content "süt, ekmek"
  notebook notes list
`,
		SilenceUsage: true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServerURL(), "server base URL (env "+EnvServerURL+")")
	cmd.PersistentFlags().StringVar(&app.StorePath, "credentials", "", "credentials file (default ~/.notebook/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NewNotesCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
