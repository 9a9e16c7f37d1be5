package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/config"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/costtree"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/ebkp"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/logger"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/feature/costmap/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for costmap commands
	treeFile     string
	elementsFile string
	outputFile   string
	forceRefresh bool
)

// costmapCmd is the parent command for all offline cost mapping operations.
var costmapCmd = &cobra.Command{
	Use:   "costmap",
	Short: "Map cost estimates against model element exports",
	Long: `Run the cost mapping engine offline against local JSON files.
Useful for pipeline runs and debugging without a running server.`,
}

// costmapApplyCmd maps a cost tree file against an element export file.
var costmapApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply cost mapping to a tree file",
	Long: `Apply cost mapping to a local cost tree using a local element export.

Examples:
  # Map a tree and print the result
  costmap apply --tree tree.json --elements elements.json

  # Write the mapped tree to a file
  costmap apply --tree tree.json --elements elements.json -o mapped.json`,
	RunE: runCostmapApply,
}

// costmapMatchesCmd resolves every element code of an export file.
var costmapMatchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Resolve element codes against the match index",
	RunE:  runCostmapMatches,
}

func init() {
	costmapApplyCmd.Flags().StringVar(&treeFile, "tree", "", "Path to the cost tree JSON file (required)")
	costmapApplyCmd.Flags().StringVar(&elementsFile, "elements", "", "Path to the element export JSON file (required)")
	costmapApplyCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the mapped tree to this file instead of stdout")
	_ = costmapApplyCmd.MarkFlagRequired("tree")
	_ = costmapApplyCmd.MarkFlagRequired("elements")

	costmapMatchesCmd.Flags().StringVar(&elementsFile, "elements", "", "Path to the element export JSON file (required)")
	costmapMatchesCmd.Flags().BoolVar(&forceRefresh, "force", false, "Ignore any cached match payload")
	_ = costmapMatchesCmd.MarkFlagRequired("elements")

	costmapCmd.AddCommand(costmapApplyCmd)
	costmapCmd.AddCommand(costmapMatchesCmd)
	RootCmd.AddCommand(costmapCmd)
}

func runCostmapApply(cmd *cobra.Command, args []string) error {
	l, err := newCommandLogger()
	if err != nil {
		return err
	}

	elements, err := readElementsFile(elementsFile)
	if err != nil {
		return err
	}

	var root costtree.Node
	if err := readJSONFile(treeFile, &root); err != nil {
		return fmt.Errorf("failed to read cost tree: %w", err)
	}

	ix := ebkp.BuildIndex(elements)
	result, err := costtree.Map(&root, ix)
	if err != nil {
		return fmt.Errorf("failed to map cost tree: %w", err)
	}

	total, err := costtree.NewTotalCache().ComputeTotal(result.Root)
	if err != nil {
		return fmt.Errorf("failed to compute total: %w", err)
	}

	printMapReport(l, result.Summary, total, len(elements))

	out, err := json.MarshalIndent(result.Root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mapped tree: %w", err)
	}
	if outputFile == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(outputFile, out, 0o644); err != nil {
		return fmt.Errorf("failed to write mapped tree: %w", err)
	}
	l.Info("Mapped tree written", zap.String("path", outputFile))
	return nil
}

func runCostmapMatches(cmd *cobra.Command, args []string) error {
	l, err := newCommandLogger()
	if err != nil {
		return err
	}

	elements, err := readElementsFile(elementsFile)
	if err != nil {
		return err
	}

	ix := ebkp.BuildIndex(elements)
	cache := ebkp.NewMatchCache(0)
	results, err := cache.Matches(elements, ix, forceRefresh)
	if err != nil {
		return fmt.Errorf("failed to resolve matches: %w", err)
	}

	unresolved := 0
	for _, r := range results {
		if r.Tier == ebkp.TierNone {
			unresolved++
		}
	}
	l.Info("Match report",
		zap.Int("elements", len(elements)),
		zap.Int("codes", len(results)),
		zap.Int("unresolved", unresolved),
	)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode match results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// newCommandLogger builds a logger from the application configuration so
// offline runs log the same way the server does.
func newCommandLogger() (*zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func readElementsFile(path string) ([]element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read element export: %w", err)
	}
	defer f.Close()

	elements, err := source.DecodeElements(f)
	if err != nil {
		return nil, err
	}
	return elements, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// printMapReport prints a formatted mapping report using the logger.
func printMapReport(l *zap.Logger, s costtree.MapSummary, total float64, elements int) {
	l.Info("Mapping report",
		zap.Int("elements", elements),
		zap.Int("leaves", s.Leaves),
		zap.Int("matched", s.Matched),
		zap.Int("zero_quantity", s.ZeroQuantity),
		zap.Int("unmatched", s.Unmatched),
		zap.Int("no_code", s.NoCode),
		zap.Int("aggregates", s.Aggregates),
		zap.Float64("total_chf", total),
	)
}
