package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/de-tools/sales-reporter/pkg/export/excel"
	"github.com/de-tools/sales-reporter/pkg/services/config"
	"github.com/de-tools/sales-reporter/pkg/services/delivery"
	"github.com/de-tools/sales-reporter/pkg/services/pipeline"
	"github.com/de-tools/sales-reporter/pkg/store/sqlite/sales"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	credsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sales-reporter",
		Short: "Generate the sales report and optionally deliver it by email",
		RunE:  run,
	}

	usr, _ := user.Current()
	defaultCreds := ""
	if usr != nil {
		defaultCreds = fmt.Sprintf("%s/.salesreporterrc", usr.HomeDir)
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.ini",
		"Path to the config file")
	rootCmd.Flags().StringVar(&credsPath, "credentials", defaultCreds,
		"Path to the mail credentials file (default is $HOME/.salesreporterrc)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	settings := delivery.Settings{
		Enabled: cfg.Email.Enabled,
		Host:    cfg.Email.SMTPHost,
		Port:    cfg.Email.SMTPPort,
	}
	if cfg.Email.Enabled {
		registry, err := config.NewRegistry(credsPath)
		if err != nil {
			return fmt.Errorf("failed to load credentials file: %w", err)
		}
		creds, err := registry.GetCredentials(ctx, cfg.Email.Profile)
		if err != nil {
			return fmt.Errorf("failed to resolve mail credentials: %w", err)
		}
		settings.Username = creds.Username
		settings.Password = creds.Password
	}

	db, err := sales.Connect(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	p := pipeline.NewPipeline(
		sales.NewStore(db),
		excel.NewRenderer(),
		delivery.NewDispatcher(settings),
		pipeline.Settings{
			OutputDir:       cfg.Report.OutputDir,
			DeliveryEnabled: cfg.Email.Enabled,
			Sender:          cfg.Email.Sender,
			Recipient:       cfg.Email.Recipient,
		},
	)

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Str("artifact", result.ArtifactPath).
		Int("rows", result.RowCount).
		Msg("report run complete")
	return nil
}
