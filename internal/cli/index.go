package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the index and print its statistics",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("search service not configured")
	}
	st, err := ragService.Stats()
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	if appConfig != nil {
		cmd.Printf("Knowledge base: %s\n", appConfig.KnowledgeBase.Path)
	}
	cmd.Printf("Documents: %d\n", st.Documents)
	cmd.Printf("Chunks:    %d\n", st.Chunks)
	cmd.Printf("Terms:     %d\n", st.Terms)
	return nil
}
