package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mutablerig/internal/config"
	"mutablerig/internal/scene"
)

func newSceneCommand(ctx *commandContext) *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "Scene file utilities",
	}

	sceneCmd.AddCommand(newSceneValidateCommand(ctx))
	sceneCmd.AddCommand(newSceneShowCommand(ctx))
	sceneCmd.AddCommand(newSceneInitCommand())

	return sceneCmd
}

func sceneArgPath(ctx *commandContext, args []string) (string, error) {
	if len(args) > 0 {
		return config.ExpandPath(args[0])
	}
	cfg := ctx.configValue()
	if cfg == nil || cfg.Paths.ScenePath == "" {
		return "", fmt.Errorf("no scene path given and none configured")
	}
	return cfg.Paths.ScenePath, nil
}

func newSceneValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a scene file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sceneArgPath(ctx, args)
			if err != nil {
				return err
			}
			sc, err := scene.Load(path)
			if err != nil {
				return fmt.Errorf("scene invalid: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scene path: %s\n", path)
			fmt.Fprintf(out, "Scene %q valid: %d rigs, %d definitions\n", sc.Name, sc.RigCount(), sc.Table.Len())
			return nil
		},
	}
}

func newSceneShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Show the rigs and definition table of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sceneArgPath(ctx, args)
			if err != nil {
				return err
			}
			sc, err := scene.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scene: %s\n\n", sc.Name)

			rigRows := make([][]string, 0, sc.RigCount())
			for _, id := range sc.RigIDs() {
				r, _ := sc.Rig(id)
				curves := "none"
				if sc.Sampler.HasCurves(id) {
					curves = "baked"
				}
				rigRows = append(rigRows, []string{
					id,
					scene.DisplayTitle(r.Root()),
					r.Namespace(),
					strconv.Itoa(r.JointCount()),
					curves,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Rig", "Title", "Namespace", "Joints", "Curves"},
				rigRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintln(out)

			defRows := make([][]string, 0, sc.Table.Len())
			for _, def := range sc.Table.Definitions() {
				defRows = append(defRows, []string{formatFrame(def.Frame), def.RigID})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"From Frame", "Rig"},
				defRows,
				[]columnAlignment{alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newSceneInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample scene file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = "scene.toml"
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve scene path: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(expanded); err == nil {
					return fmt.Errorf("scene file already exists at %s (use --overwrite to replace it)", expanded)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check scene path: %w", err)
				}
			}

			if err := scene.CreateSample(expanded); err != nil {
				return fmt.Errorf("create sample scene: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample scene to %s\n", expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the scene file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing scene if present")
	return cmd
}
