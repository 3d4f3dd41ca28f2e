package cli

import (
	"github.com/spf13/cobra"

	"github.com/mustafaciftc/notebook-app/internal/client/api"
	"github.com/mustafaciftc/notebook-app/internal/client/store"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	NewStore     = func(path string) store.Store { return store.NewFile(path) }
	ReadPassword = func(cmd *cobra.Command, prompt string) (string, error) {
		return readPassword(cmd, prompt)
	}
)
