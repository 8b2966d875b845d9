package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wcheek/tensorstack/pkg/stack"
	"github.com/wcheek/tensorstack/pkg/version"
)

func NewResourcesCmd() *cobra.Command {
	options := stack.DefaultOptions()
	cmd := &cobra.Command{
		Use:          "resources",
		Short:        "list the declared resources in provisioning order",
		Version:      version.Get().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.ImageUri == "" {
				// the image does not affect the resource graph
				options.ImageUri = "example.invalid/prediction:latest"
			}
			s, err := stack.New(options)
			if err != nil {
				return err
			}
			infos, err := s.Resources()
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"#", "LOGICAL ID", "TYPE", "DEPENDS ON"})
			for i, info := range infos {
				t.AppendRow(table.Row{i + 1, info.LogicalID, info.Type, strings.Join(info.DependsOn, ", ")})
			}
			t.Render()
			return nil
		},
	}
	addStackFlags(cmd.Flags(), options)
	return cmd
}
