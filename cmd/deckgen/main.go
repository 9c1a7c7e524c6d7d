package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/youruser/deckprint/internal/api"
	"github.com/youruser/deckprint/internal/config"
	"github.com/youruser/deckprint/internal/logging"
	"github.com/youruser/deckprint/internal/service"
)

type app struct {
	configPath string
	cfg        *config.Config
	svc        *service.DeckService
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	a.cfg = cfg
	a.svc = service.NewDeckService(cfg, logrus.StandardLogger())
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "deckgen",
		Short:             "Composite playing card images and paginate them into PDFs",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.svc.Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./config.{json,yaml,toml})")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Generate images and/or documents as the config options say",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.svc.Run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "images",
			Short: "Generate every card image",
			RunE: func(cmd *cobra.Command, _ []string) error {
				paths, err := a.svc.GenerateImages(cmd.Context())
				if err != nil {
					return err
				}
				logrus.WithField("count", len(paths)).Info("Images created")
				return nil
			},
		},
		newPDFCmd(a),
		newServeCmd(a),
	)
	return root
}

func newPDFCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Paginate the finished images into PDF documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.Options.PDFFormat
			}
			_, err := a.svc.GeneratePDF(cmd.Context(), a.svc.Mode(format))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "default, separated or alternated (overrides options.pdf_format)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve card previews and deck documents over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gin.SetMode(a.cfg.Server.Mode)
			log := logrus.StandardLogger()
			router := api.NewRouter(api.NewHandler(a.svc), log)
			return api.NewServer(a.cfg.Server.Addr(), router).Run(cmd.Context(), log)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("deckgen failed")
		stop()
		os.Exit(1)
	}
}
