package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// NewNotesCmd создаёт группу команд для работы с заметками.
func NewNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Заметки: list, add, show, edit, delete",
	}

	cmd.AddCommand(NewNotesListCmd(app))
	cmd.AddCommand(NewNotesAddCmd(app))
	cmd.AddCommand(NewNotesShowCmd(app))
	cmd.AddCommand(NewNotesEditCmd(app))
	cmd.AddCommand(NewNotesDeleteCmd(app))

	return cmd
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.WithMessage(serr.ErrInvalidInput, serr.MsgBadNoteID)
	}
	return id, nil
}

// NewNotesListCmd печатает все заметки таблицей.
func NewNotesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "Список заметок",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Notes.Reset()
			if err := app.Notes.ListNotes(cmd.Context()); err != nil {
				return err
			}

			notes := app.Notes.Snapshot().Notes
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no notes")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCREATED")
			for _, n := range notes {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", n.ID, n.Title, n.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

// NewNotesAddCmd создаёт заметку.
func NewNotesAddCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить заметку",
		Long: `Добавить заметку.

Пример:
  notebook notes add --title "Alışveriş" --content "süt, ekmek"
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Notes.Reset()
			if err := app.Notes.CreateNote(cmd.Context(), title, content); err != nil {
				return err
			}
			s := app.Notes.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nid=%d\n", s.Message, s.LastCreated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")

	return cmd
}

// NewNotesShowCmd печатает одну заметку.
func NewNotesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "show <id>",
		Short:        "Показать заметку",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Notes.Reset()
			if err := app.Notes.GetNoteByID(cmd.Context(), id); err != nil {
				return err
			}

			s := app.Notes.Snapshot()
			if s.EditNote == nil {
				// сервер в режиме совместимости отдаёт только message
				fmt.Fprintln(cmd.OutOrStdout(), s.Message)
				return nil
			}
			n := s.EditNote
			fmt.Fprintf(cmd.OutOrStdout(), "id=%d\ntitle=%s\ncreated=%s\n\n%s\n",
				n.ID, n.Title, n.CreatedAt.Local().Format(time.DateTime), n.Content)
			return nil
		},
	}
}

// NewNotesEditCmd заменяет заголовок и/или текст заметки.
//
// Незаданные флаги берутся из текущей версии заметки. Если ничего
// не изменилось, запрос на обновление не отправляется.
func NewNotesEditCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить заметку",
		Long: `Изменить заметку.

Пример:
  notebook notes edit 3 --title "Yeni başlık"
`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Notes.Reset()

			if err := app.Notes.GetNoteByID(cmd.Context(), id); err != nil {
				return err
			}
			if orig := app.Notes.Snapshot().EditNote; orig != nil {
				if !cmd.Flags().Changed("title") {
					title = orig.Title
				}
				if !cmd.Flags().Changed("content") {
					content = orig.Content
				}
			}

			err = app.Notes.UpdateNote(cmd.Context(), id, title, content)
			switch {
			case errors.Is(err, serr.ErrNoChanges):
				fmt.Fprintln(cmd.OutOrStdout(), serr.Message(err))
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Notes.Snapshot().Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")

	return cmd
}

// NewNotesDeleteCmd удаляет заметку после подтверждения.
func NewNotesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "delete <id>",
		Short:        "Удалить заметку",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Not %d silinsin mi?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}
			if err := app.setup(cmd); err != nil {
				return err
			}
			defer app.Notes.Reset()
			if err := app.Notes.DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Notes.Snapshot().Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
