package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wcheek/tensorstack/pkg/stack"
	"github.com/wcheek/tensorstack/pkg/version"
)

const ErrExitCode = 1

func main() {
	if err := NewTensorstackCmd().Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(ErrExitCode)
	}
}

func NewTensorstackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tensorstack",
		Short:   "declare, seed, and serve the prediction stack",
		Version: version.Get().String(),
	}
	cmd.AddCommand(
		NewSynthCmd(),
		NewResourcesCmd(),
		NewSeedCmd(),
		NewServeCmd(),
	)
	return cmd
}

func addStackFlags(flags *pflag.FlagSet, options *stack.Options) {
	flags.StringVar(&options.StackName, "stack-name", options.StackName, "stack name")
	flags.StringVar(&options.ImageUri, "image-uri", options.ImageUri, "container image of the prediction function")
	flags.StringVar(&options.FunctionName, "function-name", options.FunctionName, "function name")
	flags.StringVar(&options.VpcCidr, "vpc-cidr", options.VpcCidr, "vpc cidr block")
	flags.IntVar(&options.MemorySize, "memory", options.MemorySize, "function memory in mb")
	flags.IntVar(&options.TimeoutSeconds, "timeout", options.TimeoutSeconds, "function timeout in seconds")
	flags.StringVar(&options.BucketName, "bucket", options.BucketName, "model bucket name")
	flags.StringVar(&options.ModelKey, "model-key", options.ModelKey, "model object key")
	flags.StringVar(&options.AccessPointPath, "access-point-path", options.AccessPointPath, "access point root path on the file system")
	flags.StringVar(&options.MountPath, "mount-path", options.MountPath, "cache mount path inside the function")
	flags.BoolVar(&options.PublicURL, "public-url", options.PublicURL, "expose an unauthenticated function url")
	flags.StringSliceVar(&options.AllowedOrigins, "allowed-origins", options.AllowedOrigins, "cross-origin allow list of the function url")
}
