package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arblens/arblens/internal/engine"
)

var (
	askDB      string
	askJSON    bool
	askTimeout time.Duration
	askNoAI    bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question about the arbitration case records",
	Long: `Ask resolves a free-text question against the loaded case records.

Example:
  arblens ask "How many cases has arbitrator John Smith handled?"
  arblens ask "How often does Jane Doe rule in favor of consumers?"
  arblens ask --json "What is the average award given by John Smith?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askDB, "db", "", "case database path (overrides config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "emit the full answer as JSON")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 60*time.Second, "overall resolution timeout")
	askCmd.Flags().BoolVar(&askNoAI, "no-ai", false, "disable AI escalation for this question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg := loadConfig()
	if askDB != "" {
		cfg.Store.Path = askDB
	}
	if askNoAI {
		cfg.AI.Provider = ""
	}

	if _, err := os.Stat(cfg.Store.Path); err != nil {
		return fmt.Errorf("case database %s not found (run 'arblens load' first)", cfg.Store.Path)
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	eng, err := engine.New(cfg, log)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Close()

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	answer, err := eng.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer: %w", err)
	}

	if askJSON {
		out, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("encode answer: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(answer.Answer)
	return nil
}
