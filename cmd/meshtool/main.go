// meshtool generates, edits and measures triangle meshes and writes them as
// glTF.
//
// Usage:
//
//	meshtool grid 10 10 --fold-x       Rectangular grid, optionally folded
//	meshtool hexgrid 8 8               Equilateral triangle grid
//	meshtool disc 16 4                 Disc of concentric rings
//	meshtool cube                      Axis-aligned box
//	meshtool simplify in.glb -n 200    Quadric error simplification
//	meshtool subdivide in.glb -s 2     Midpoint subdivision, smooth or flat
//	meshtool bevel in.glb vertex       Cut a corner
//	meshtool extrude in.glb a b c d    Extrude a closed border
//	meshtool transform in.glb          Move, rotate and scale
//	meshtool morph a.glb b.glb         Spring-driven morph frames
//	meshtool physics in.glb            Volume, mass and centre of gravity
//	meshtool check in.glb              Validate the half-edge structure
//	meshtool info in.glb               Counts and bounding box
//	meshtool config                    Write the current configuration
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/internal/config"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/internal/logger"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

var version = "dev"

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "meshtool",
		Short: "Half-edge triangle mesh toolkit",
		Long: `meshtool builds triangle meshes, edits them with half-edge operations
(simplification, subdivision, bevel, extrusion) and writes glTF 2.0 files.

Settings come from meshtool.yaml or the user config directory, overridden
by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return err
			}
			mesh.SetLogger(logger.Log.Named("mesh"))
			logger.Debug("config loaded", zap.String("command", cmd.Name()),
				zap.String("output", cfg.Output.Dir), zap.Bool("binary", cfg.Output.Binary))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newGridCmd(),
		newHexGridCmd(),
		newDiscCmd(),
		newCubeCmd(),
		newSimplifyCmd(),
		newSubdivideCmd(),
		newBevelCmd(),
		newExtrudeCmd(),
		newTransformCmd(),
		newMorphCmd(),
		newPhysicsCmd(),
		newCheckCmd(),
		newInfoCmd(),
		newConfigCmd(),
	)
	return root
}
