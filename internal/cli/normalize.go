package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"tripguide/internal/itinerary"
)

var (
	normalizeSources  []string
	normalizeMarkdown bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Extract a structured itinerary from model output",
	Long: `Reads raw model output from a file, or stdin when no file is given,
and extracts the itinerary JSON it contains. Code fences, surrounding prose,
smart quotes and trailing commas are tolerated. When no itinerary can be
recovered the raw text is printed unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringSliceVar(&normalizeSources, "sources", nil, "citation tokens used when the itinerary lists none")
	normalizeCmd.Flags().BoolVar(&normalizeMarkdown, "markdown", false, "render the itinerary as markdown")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 1 && args[0] != "-" {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	it := itinerary.ExtractStructured(string(raw), normalizeSources)
	if it == nil {
		cmd.PrintErrln("no structured itinerary found; printing raw text")
		cmd.Println(strings.TrimRight(string(raw), "\n"))
		return nil
	}
	if normalizeMarkdown {
		cmd.Print(it.Markdown())
		return nil
	}
	data, err := sonic.ConfigStd.MarshalIndent(it, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
