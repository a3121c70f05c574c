package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
		list    bool
	)

	cmd := &cobra.Command{
		Use:          "mangaview [path]",
		Short:        "A fast viewer for comic archives, image folders and PDFs",
		Long:         "mangaview shows zip/cbz, rar/cbr, 7z/cb7, pdf and image folders as single pages or two-page spreads.\n\n" + actionHelp(),
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setDebug(debug)

			configPath := cfgFile
			if configPath == "" {
				configPath = getConfigPath()
			}
			result := loadConfigFromPath(configPath)
			for _, w := range result.Warnings {
				logger.Warnf("Config: %s", w)
			}

			if list {
				if len(args) == 0 {
					return fmt.Errorf("--list needs a path")
				}
				return listPages(cmd.OutOrStdout(), args[0], result.Config)
			}
			return runViewer(args, result.Config, configPath)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mangaview.json)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&list, "list", false, "print the page list of path and exit")

	return cmd
}

// listPages prints the pages of path in display order
func listPages(w io.Writer, path string, config Config) error {
	src, start, err := openSource(path, config.SortMethod)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s (%s, %d pages)\n", src.Name(), src.Kind, len(src.Pages))
	for i, id := range src.Pages {
		marker := " "
		if i == start {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%4d  %s\n", marker, i+1, id)
	}
	return nil
}

func runViewer(args []string, config Config, configPath string) error {
	if err := InitGraphics(); err != nil {
		logger.Warnf("Failed to load font, overlays disabled: %v", err)
	}

	viewer := NewViewer(config.Settings())
	defer viewer.Close()

	if len(args) > 0 {
		if err := viewer.Open(args[0]); err != nil {
			logger.Errorf("Failed to open %s: %v", args[0], err)
		}
	}

	game := NewGame(config, configPath, viewer, zenityPicker{})

	ebiten.SetWindowTitle("mangaview")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowSizeLimits(minWidth, minHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)

	if err := saveConfigToPath(game.Config(), configPath); err != nil {
		logger.Warnf("Failed to save config: %v", err)
	}
	return runErr
}
