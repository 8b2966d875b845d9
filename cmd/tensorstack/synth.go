package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wcheek/tensorstack/pkg/stack"
	"github.com/wcheek/tensorstack/pkg/version"
)

func NewSynthCmd() *cobra.Command {
	options := stack.DefaultOptions()
	format := "json"
	output := ""
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "render the CloudFormation template of the prediction stack",
		Example: `
  tensorstack synth --image-uri 123456789012.dkr.ecr.us-east-1.amazonaws.com/prediction:latest
  tensorstack synth --image-uri ... --format yaml -o template.yaml
		`,
		Version:      version.Get().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack.New(options)
			if err != nil {
				return err
			}
			t, err := s.Template()
			if err != nil {
				return err
			}
			var data []byte
			switch format {
			case "json":
				data, err = t.JSON()
			case "yaml":
				data, err = t.YAML()
			default:
				return fmt.Errorf("unknown format: %s (use 'json' or 'yaml')", format)
			}
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	addStackFlags(cmd.Flags(), options)
	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", output, "output file (default: stdout)")
	return cmd
}
