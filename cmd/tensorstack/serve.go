package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/wcheek/tensorstack/pkg/handler"
	"github.com/wcheek/tensorstack/pkg/model"
	"github.com/wcheek/tensorstack/pkg/version"
)

func NewServeCmd() *cobra.Command {
	options := handler.DefaultOptions()
	loaderopts := model.NewDefaultLoaderOptions()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the prediction handler locally",
		Example: `
  tensorstack serve --cache-dir /tmp/models --bucket models-bucket
  tensorstack serve --s3-url http://localhost:9000 --s3-path-style
		`,
		Version:      version.Get().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
			defer cancel()

			log.SetFlags(log.LstdFlags | log.Lshortfile)
			ctx = logr.NewContext(ctx, stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error}))

			store, err := model.NewS3Store(ctx, loaderopts.S3)
			if err != nil {
				return err
			}
			// startup probe: a missing object is not fatal, the cache may
			// already be warm
			if ok, err := store.Exists(ctx, loaderopts.Key); err != nil {
				return err
			} else if !ok {
				logr.FromContextOrDiscard(ctx).Info("model object not found in bucket",
					"bucket", loaderopts.S3.Bucket, "key", loaderopts.Key)
			}
			loader := &model.Loader{CacheDir: loaderopts.CacheDir, Key: loaderopts.Key, Fetcher: store}
			return handler.Run(ctx, options, &handler.Handler{Models: loader})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&options.Listen, "listen", options.Listen, "listen address")
	flags.StringVar(&options.TLS.CertFile, "tls-cert", options.TLS.CertFile, "tls cert file")
	flags.StringVar(&options.TLS.KeyFile, "tls-key", options.TLS.KeyFile, "tls key file")
	flags.StringSliceVar(&options.AllowedOrigins, "allowed-origins", options.AllowedOrigins, "cross-origin allow list")
	flags.StringVar(&loaderopts.CacheDir, "cache-dir", loaderopts.CacheDir, "model cache directory")
	flags.StringVar(&loaderopts.Key, "model-key", loaderopts.Key, "model object key")
	flags.StringVar(&loaderopts.S3.Bucket, "bucket", loaderopts.S3.Bucket, "model bucket")
	flags.StringVar(&loaderopts.S3.URL, "s3-url", loaderopts.S3.URL, "s3 endpoint url (default: aws)")
	flags.StringVar(&loaderopts.S3.Region, "s3-region", loaderopts.S3.Region, "s3 region")
	flags.StringVar(&loaderopts.S3.AccessKey, "s3-access-key", loaderopts.S3.AccessKey, "s3 access key")
	flags.StringVar(&loaderopts.S3.SecretKey, "s3-secret-key", loaderopts.S3.SecretKey, "s3 secret key")
	flags.BoolVar(&loaderopts.S3.PathStyle, "s3-path-style", loaderopts.S3.PathStyle, "use path style addressing")
	return cmd
}
