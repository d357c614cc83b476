package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tripguide/internal/config"
	"tripguide/internal/loader"
	"tripguide/internal/logger"
	"tripguide/internal/tui"
	"tripguide/internal/watcher"
)

var tuiWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search interface.

Controls:
  Enter    - Search
  ↑/↓      - Browse results
  Esc      - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "re-index when knowledge-base files change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if ragService == nil || appConfig == nil {
		return errors.New("search service not configured")
	}
	st, err := ragService.Stats()
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	summary := fmt.Sprintf("%d documents, %d chunks from %s", st.Documents, st.Chunks, appConfig.KnowledgeBase.Path)

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(tui.New(ragService, summary, ragService.TopK()), tea.WithAltScreen())

	if tuiWatch || appConfig.KnowledgeBase.Watch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		kb := knowledgeBase(appConfig)
		w, err := watcher.NewFSNotifyWatcher(kb.Extensions(), watcher.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer w.Stop()
		events, err := w.Watch(ctx, kb.Path())
		if err != nil {
			return fmt.Errorf("failed to watch knowledge base: %w", err)
		}
		go ragService.Follow(ctx, events, func(err error) {
			p.Send(tui.ReloadedMsg{Err: err})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// knowledgeBase returns the loader for the configured knowledge base. The
// watcher follows the same files the loader reads.
func knowledgeBase(cfg *config.AppConfig) *loader.Loader {
	return loader.New(cfg.KnowledgeBase.Path, cfg.KnowledgeBase.Extensions)
}
