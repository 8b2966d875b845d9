package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wcheek/tensorstack/pkg/model"
	"github.com/wcheek/tensorstack/pkg/version"
)

func NewSeedCmd() *cobra.Command {
	s3opts := model.NewDefaultS3Options()
	indexPath := ".tensorstack/seed.db"
	packKey := ""
	cmd := &cobra.Command{
		Use:   "seed <dir>",
		Short: "upload a local model directory into the model bucket",
		Example: `
  tensorstack seed ./model_files
  tensorstack seed ./model_files --bucket models-bucket --s3-region us-east-1
  tensorstack seed ./model_files --pack model.tgz   # one packed object
  tensorstack seed ./model_files --index ""   # disable the digest index
		`,
		Version:      version.Get().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
			defer cancel()
			if len(args) == 0 {
				return errors.New("a model directory is required")
			}

			log.SetFlags(log.LstdFlags | log.Lshortfile)
			ctx = logr.NewContext(ctx, stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error}))

			store, err := model.NewS3Store(ctx, s3opts)
			if err != nil {
				return err
			}
			seeder := &model.Seeder{Store: store}
			if indexPath != "" {
				index, err := model.OpenSeedIndex(indexPath)
				if err != nil {
					return err
				}
				defer index.Close()
				seeder.Index = index
			}

			var seeded []model.SeededObject
			if packKey != "" {
				obj, err := seeder.SeedArchive(ctx, args[0], packKey)
				if err != nil {
					return err
				}
				seeded = []model.SeededObject{obj}
			} else {
				seeded, err = seeder.Seed(ctx, args[0])
				if err != nil {
					return err
				}
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"KEY", "DIGEST", "SIZE", "STATUS"})
			for _, obj := range seeded {
				status := "uploaded"
				if obj.Skipped {
					status = "unchanged"
				}
				t.AppendRow(table.Row{obj.Key, obj.Digest, obj.Size, status})
			}
			t.Render()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&s3opts.Bucket, "bucket", s3opts.Bucket, "model bucket")
	flags.StringVar(&s3opts.URL, "s3-url", s3opts.URL, "s3 endpoint url (default: aws)")
	flags.StringVar(&s3opts.Region, "s3-region", s3opts.Region, "s3 region")
	flags.StringVar(&s3opts.AccessKey, "s3-access-key", s3opts.AccessKey, "s3 access key")
	flags.StringVar(&s3opts.SecretKey, "s3-secret-key", s3opts.SecretKey, "s3 secret key")
	flags.BoolVar(&s3opts.PathStyle, "s3-path-style", s3opts.PathStyle, "use path style addressing")
	flags.StringVar(&indexPath, "index", indexPath, "digest index path, empty to re-upload everything")
	flags.StringVar(&packKey, "pack", packKey, "pack the directory into one tgz object under this key")
	return cmd
}
