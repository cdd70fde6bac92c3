package main

import (
	"data-catalogue/config"
	"data-catalogue/utils"
	_ "embed"
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
	"time"
)

//goland:noinspection GoUnnecessarilyExportedIdentifiers
var AppVersion = "1.0"

//go:embed config.yaml
var defaultConfigData []byte

func main() {
	err := newRootCommand().Execute()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type application struct {
	configFile string
	ctx        *Context
	closeLog   func() error
	startTime  time.Time
}

func newRootCommand() *cobra.Command {
	app := &application{}

	rootCommand := &cobra.Command{
		Use:           "data-catalogue",
		Short:         "Manage the catalogue.csv manifests of the survey data folders",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCommand.PersistentFlags().StringVar(&app.configFile, "config", "config.yaml", "Path to the configuration file, created with defaults if missing")

	rootCommand.AddCommand(
		app.newReportCommand(),
		app.newUpdateCommand(),
		app.newIndexCommand(),
	)

	return rootCommand
}

// setup loads the configuration and opens the run-scoped log for a command.
func (app *application) setup(commandName string) error {
	c, err := config.Load(app.configFile, defaultConfigData)

	if err != nil {
		return err
	}

	app.startTime = time.Now()
	logFilePath := filepath.Join(c.LogDirectory, utils.LogFileName(commandName, app.startTime))

	logger, closeLog, err := utils.SetupLogger(logFilePath, c.IsDebug)

	if err != nil {
		return err
	}

	app.closeLog = closeLog
	app.ctx = &Context{
		Config: c,
		Log:    logger,
		Out:    os.Stdout,
	}

	debugFormat := ""

	if c.IsDebug {
		debugFormat = " (debug)"
	}

	logger.Infof("Data Catalogue version %s%s. Logging to \"%s\"", AppVersion, debugFormat, logFilePath)

	return nil
}

// run sets up the command, logs any failure to the run log and always closes the log.
func (app *application) run(commandName string, fn func(ctx *Context) error) (err error) {
	if err = app.setup(commandName); err != nil {
		return err
	}

	defer func() {
		if err != nil {
			app.ctx.Log.Errorf("Error: %v", err)
		}

		app.ctx.Log.Infof("Finished in %s", utils.FormatDuration(time.Since(app.startTime)))

		if closeErr := app.closeLog(); err == nil {
			err = closeErr
		}
	}()

	return fn(app.ctx)
}

func (app *application) newReportCommand() *cobra.Command {
	options := ReportOptions{}

	command := &cobra.Command{
		Use:   "report <path>",
		Short: "Write a report of files missing from the catalogues or the file system",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.run(command.Name(), func(ctx *Context) error {
				_, _, err := ctx.Report(arguments[0], options)
				return err
			})
		},
	}

	command.Flags().BoolVarP(&options.Recursive, "subfolders", "s", false, "Include subfolders")
	command.Flags().StringVarP(&options.Name, "name", "n", "", "Report file to write")

	return command
}

func (app *application) newUpdateCommand() *cobra.Command {
	options := UpdateOptions{}

	command := &cobra.Command{
		Use:   "update <path>",
		Short: "Add uncatalogued files to catalogue.csv, creating it where missing",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(command *cobra.Command, arguments []string) error {
			// Fail on a bad date before anything touches the file system
			if options.Date == "" {
				return nil
			}

			_, err := ParseDate(options.Date)
			return err
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.run(command.Name(), func(ctx *Context) error {
				_, err := ctx.Update(arguments[0], options)
				return err
			})
		},
	}

	command.Flags().BoolVarP(&options.Recursive, "subfolders", "s", false, "Include subfolders")
	command.Flags().StringVarP(&options.Owner, "owner", "o", "", "Owner to record, defaults to the file owner")
	command.Flags().StringVarP(&options.Date, "date", "d", "", "Date added to record [YYYYMMDD], defaults to the file modification time")
	command.Flags().StringVarP(&options.Comment, "comment", "c", "", "Comment to record")

	return command
}

func (app *application) newIndexCommand() *cobra.Command {
	recursive := false

	command := &cobra.Command{
		Use:   "index <path>",
		Short: "Store the reconciled catalogues and file hashes in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.run(command.Name(), func(ctx *Context) error {
				db, err := initDb(ctx.Config)

				if err != nil {
					return err
				}

				ctx.DB = db

				return ctx.Index(arguments[0], recursive)
			})
		},
	}

	command.Flags().BoolVarP(&recursive, "subfolders", "s", false, "Include subfolders")

	return command
}
