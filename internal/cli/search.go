package cli

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"tripguide/internal/domain"
	"tripguide/internal/retriever"
	"tripguide/internal/summarizer"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Ranks knowledge-base passages against the query by TF-IDF cosine
similarity. Passages scoring at or below the relevance threshold are dropped.
Results are labelled S1, S2, ... for citation.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default retrieval.top_k)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchHit struct {
	Citation string `json:"citation"`
	domain.RetrievedChunk
}

func runSearch(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("search service not configured")
	}
	query := args[0]

	results, err := ragService.Query(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	citations := retriever.Citations(results)

	if searchJSON {
		return outputSearchJSON(cmd, citations)
	}
	outputSearchTable(cmd, query, citations)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, citations []retriever.Citation) error {
	hits := make([]searchHit, len(citations))
	for i, c := range citations {
		hits[i] = searchHit{Citation: c.Token, RetrievedChunk: c.Chunk}
	}
	data, err := sonic.ConfigStd.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, citations []retriever.Citation) {
	if len(citations) == 0 {
		cmd.Println("No relevant passages found.")
		cmd.Println(retriever.FormatSources(nil))
		return
	}

	excerpts := summarizer.NewFrequencySummarizer()
	tokens := make([]string, len(citations))
	for i, c := range citations {
		tokens[i] = c.Token
		cmd.Printf("  [%s] %s (%.2f)\n", c.Token, c.Chunk.Title, c.Chunk.Score)
		if c.Chunk.URL != "" {
			cmd.Printf("      %s\n", c.Chunk.URL)
		}
		cmd.Printf("      %s\n", excerpts.Excerpt(c.Chunk.Content, query, 2))
		cmd.Println()
	}
	cmd.Println(retriever.FormatSources(tokens))
}
