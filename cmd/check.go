/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/notargets/gobem/InputParameters"
	"github.com/notargets/gobem/logger"
	"github.com/notargets/gobem/readfiles"
)

type CheckOptions struct {
	GeometryFile     string
	ConductivityFile string
	InputFile        string
	Output           string
}

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Read a head model geometry and its conductivities, report its topology",
	Long: `
Reads a geometry (.geom) file, checks that every interface is closed, finds the
outermost domain and decides whether the domains are nested. When a conductivity
file is given, every domain must have a conductivity in it.

gobem check -G head.geom -C head.cond -o yaml
gobem check -I model.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &CheckOptions{}
		opts.GeometryFile, _ = cmd.Flags().GetString("geometry")
		opts.ConductivityFile, _ = cmd.Flags().GetString("conductivity")
		opts.InputFile, _ = cmd.Flags().GetString("inputFile")
		opts.Output, _ = cmd.Flags().GetString("output")
		return RunCheck(opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().StringP("geometry", "G", "", "geometry file (.geom) describing meshes, interfaces and domains")
	CheckCmd.Flags().StringP("conductivity", "C", "", "conductivity file (.cond or .yaml) with one entry per domain")
	CheckCmd.Flags().StringP("inputFile", "I", "", "YAML model file like:\n\tTitle: \"Head\"\n\tGeometryFile: head.geom\n\tConductivityFile: head.cond")
	CheckCmd.Flags().StringP("output", "o", "text", "report format: text or yaml")
}

// RunCheck reads the model described by opts and writes its summary to w.
// Files named on the command line take precedence over the model file.
func RunCheck(opts *CheckOptions, w io.Writer) (err error) {
	var (
		title string
		mp    *InputParameters.ModelParameters
	)
	if opts.InputFile != "" {
		if mp, err = InputParameters.ReadModelParameters(opts.InputFile); err != nil {
			return
		}
		title = mp.Title
		if opts.GeometryFile == "" {
			opts.GeometryFile = mp.GeometryFile
		}
		if opts.ConductivityFile == "" {
			opts.ConductivityFile = mp.ConductivityFile
		}
	}
	if opts.GeometryFile == "" {
		return fmt.Errorf("must supply a geometry file (-G, --geometry) or a model file (-I, --inputFile)")
	}

	geom, err := readfiles.ReadGeometry(opts.GeometryFile)
	if err != nil {
		return
	}
	logger.Info("geometry read", "file", opts.GeometryFile,
		"domains", len(geom.Domains), "interfaces", len(geom.Interfaces), "nested", geom.Nested)
	if opts.ConductivityFile != "" {
		if err = readfiles.ReadConductivities(geom, opts.ConductivityFile); err != nil {
			return
		}
	}
	if mp != nil && opts.Output != "yaml" {
		mp.Print(w)
	}
	return NewSummary(title, geom, opts.ConductivityFile != "").Write(w, opts.Output)
}
