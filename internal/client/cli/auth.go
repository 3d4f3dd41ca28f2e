package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт команду регистрации.
//
// Если --password не указан, пароль запрашивается интерактивно.
// При успехе токен и пользователь сохраняются в файл учётных данных.
func NewRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  notebook register --name Ayşe --email ayse@example.com --password secret1
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("password") {
				pw, err := ReadPassword(cmd, "Şifre: ")
				if err != nil {
					return err
				}
				password = pw
			}

			defer app.Auth.Reset()
			if err := app.Auth.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			s := app.Auth.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nuser=%s <%s>\n", s.Message, s.User.Name, s.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewLoginCmd создаёт команду входа. Токен сохраняется локально.
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход по email и паролю",
		Long: `Вход на сервер. Токен сохраняется в ~/.notebook/credentials.json.

Пример:
  notebook login --email ayse@example.com
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("password") {
				pw, err := ReadPassword(cmd, "Şifre: ")
				if err != nil {
					return err
				}
				password = pw
			}

			defer app.Auth.Reset()
			if err := app.Auth.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Auth.Snapshot().Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd удаляет сохранённые токен и пользователя.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "logout",
		Short:        "Выход (удалить сохранённый токен)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Auth.Reset()
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Auth.Snapshot().Message)
			return nil
		},
	}
}

// NewWhoamiCmd показывает пользователя по сохранённому токену (/api/users/me).
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "whoami",
		Short:        "Текущий пользователь",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Auth.Reset()
			if err := app.Auth.LoadProfile(cmd.Context()); err != nil {
				return err
			}
			u := app.Auth.Snapshot().User
			fmt.Fprintf(cmd.OutOrStdout(), "id=%d\nname=%s\nemail=%s\n", u.ID, u.Name, u.Email)
			return nil
		},
	}
}
