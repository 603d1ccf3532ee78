package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/project"
)

// errDidNotFit is returned by pack and find with --strict when some items
// stay unpacked. It carries no message; the report says what happened.
var errDidNotFit = errors.New("not every item fits")

// configError marks failures to load the user configuration.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// app holds state shared by every command of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	unitFlag   string
	logLevel   string

	cfg model.AppConfig
	log *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "boxfit",
		Short: "BoxFit - 3D box packing planner",
		Long: `BoxFit packs cuboid items into shipping boxes.

Pack a list of items into one container, or search a set of candidate boxes
for the smallest one that holds everything. Lengths are entered in inches or
centimetres and results can be exported as JSON, PDF, QR labels or DXF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.boxfit/config.json)")
	root.PersistentFlags().StringVarP(&a.unitFlag, "unit", "u", "", "Length unit: in or cm (default from config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	root.AddCommand(
		newPackCmd(a),
		newFindCmd(a),
		newPresetsCmd(a),
		newCheckCmd(a),
		newProjectCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the config and sets up logging. It runs before every command.
func (a *app) setup() error {
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return &configError{err: err}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = SetupLogger(cfg.Log, a.errOut)
	a.log.Debug("config loaded", "path", a.configPath, "unit", cfg.DefaultUnit)
	return nil
}

// unit resolves the --unit flag against the configured default.
func (a *app) unit() (model.Unit, error) {
	if a.unitFlag == "" {
		return a.cfg.DefaultUnit, nil
	}
	return model.ParseUnit(a.unitFlag)
}

func (a *app) presetsPath() string {
	if a.cfg.PresetsPath != "" {
		return a.cfg.PresetsPath
	}
	return project.DefaultPresetsPath()
}

func (a *app) loadPresets() (model.PresetStore, error) {
	store, err := project.LoadPresetsOrDefault(a.cfg.PresetsPath)
	if err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to load presets: %w", err)
	}
	return store, nil
}

// packer returns an engine for the given padding, already in centimetres.
func (a *app) packer(paddingCm float64) *engine.Packer {
	return engine.New(engine.Settings{
		Padding: paddingCm,
		Workers: a.cfg.Workers,
	}).WithLogger(a.log)
}
