package maccms

import (
	"github.com/spf13/cobra"

	"neovideo/internal/app/admin"
)

type plugin struct{}

// Plugin команды maccms: list, create, delete, import, check, home, browse
func Plugin() admin.Plugin {
	return plugin{}
}

func (plugin) Name() string { return "maccms" }

func (plugin) Install(app *admin.App) error {
	root := &cobra.Command{
		Use:   "maccms",
		Short: "Источники MacCMS",
	}

	root.AddCommand(
		newListCmd(app),
		newCreateCmd(app),
		newDeleteCmd(app),
		newImportCmd(app),
		newCheckCmd(app),
		newHomeCmd(app),
		newBrowseCmd(app),
	)
	app.Root().AddCommand(root)

	return nil
}
