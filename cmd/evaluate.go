package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"intraday-levels/internal/repository"
	"intraday-levels/internal/service"
	"intraday-levels/pkg/common"
)

var (
	evaluateSymbol   string
	evaluateExchange string
	evaluateSession  string
)

// evaluateCmd runs a single directive evaluation and prints the result,
// useful for checking levels on a symbol without the server running.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one symbol and print the directive as JSON",
	Run:   Evaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateSymbol, "symbol", "", "market symbol, e.g. BTCUSDT")
	evaluateCmd.Flags().StringVar(&evaluateExchange, "exchange", common.EXCHANGE_BINANCE, "exchange, BINANCE or KUCOIN")
	evaluateCmd.Flags().StringVar(&evaluateSession, "session", "", "session id, defaults to the live session")
	_ = evaluateCmd.MarkFlagRequired("symbol")
}

func Evaluate(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log, appDep.cache)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache, appDep.notifier)

	resp, err := services.DirectiveService.Evaluate(ctx, evaluateSymbol, evaluateExchange, evaluateSession)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
