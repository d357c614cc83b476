// Package cli implements the tripguide command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tripguide/internal/chunker"
	"tripguide/internal/config"
	"tripguide/internal/domain"
	"tripguide/internal/logger"
	"tripguide/internal/service"
	"tripguide/internal/watcher"
)

// ragPort is the subset of the RAG service the commands drive.
type ragPort interface {
	Query(query string, limit int) ([]domain.RetrievedChunk, error)
	Stats() (service.Stats, error)
	TopK() int
	Follow(ctx context.Context, events <-chan watcher.Event, onReload func(error))
}

var (
	version = "dev"

	configPath string
	verbose    bool

	appConfig  *config.AppConfig
	ragService ragPort
)

var rootCmd = &cobra.Command{
	Use:   "tripguide",
	Short: "Search a travel knowledge base and normalize itineraries",
	Long: `tripguide indexes a local travel knowledge base with TF-IDF and answers
queries with ranked, citable passages. It also turns noisy model output into
structured itineraries.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TRIPGUIDE_CONFIG, ./config.yaml or ~/.config/tripguide/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	_ = godotenv.Load()

	var (
		cfg  *config.AppConfig
		used = configPath
		err  error
	)
	if configPath == "" {
		cfg, used, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	logger.SetVerbose(verbose || cfg.Log.Verbose)
	logger.Debug("using config %s", used)

	if ragService != nil {
		return nil
	}
	svc, err := newRAGService(cfg)
	if err != nil {
		return err
	}
	ragService = svc
	return nil
}

func newRAGService(cfg *config.AppConfig) (*service.RAGService, error) {
	ch, err := chunker.New(cfg.Chunker.Type, cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	if err != nil {
		return nil, err
	}
	return service.NewRAGService(knowledgeBase(cfg), ch, cfg.Retrieval.RelevanceThreshold, cfg.Retrieval.TopK), nil
}
