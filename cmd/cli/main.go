package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/rmarques/granabot/internal/config"
	"github.com/rmarques/granabot/internal/exporter"
	"github.com/rmarques/granabot/internal/extract"
	"github.com/rmarques/granabot/internal/logger"
	"github.com/rmarques/granabot/internal/notion"
	"github.com/rmarques/granabot/internal/period"
	"github.com/rmarques/granabot/internal/report"
	bqstore "github.com/rmarques/granabot/internal/store/bigquery"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "resumo":
		runResumo(log)
	case "total":
		runTotal(log)
	case "limpar":
		runLimpar(log)
	case "export":
		runExport(log)
	case "notion-sync":
		runNotionSync(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("GranaBot CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse        Extract a transaction from a reply text on stdin")
	fmt.Println("  resumo       Print the period summary for a user")
	fmt.Println("  total        Print the per-category totals for a user")
	fmt.Println("  limpar       Delete all data of a user")
	fmt.Println("  export       Export a user's transactions as CSV to GCS")
	fmt.Println("  notion-sync  Mirror a user's transactions into Notion")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func openRepository(ctx context.Context, log zerolog.Logger) *bqstore.Repository {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.RequireBigQuery(); err != nil {
		log.Fatal().Err(err).Msg("Missing BigQuery configuration")
	}

	repo, err := bqstore.NewRepository(ctx, cfg.ProjectID, cfg.DatasetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery repository")
	}
	return repo
}

func resolvePeriod(log zerolog.Logger, expr string) (civil.Date, civil.Date) {
	start, end, err := period.Resolve(expr, civil.DateOf(time.Now()))
	if err != nil {
		log.Fatal().Err(err).Str("period", expr).Msg("Unrecognized period expression")
	}
	return start, end
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read stdin")
	}

	ext, err := extract.Parse(string(data))
	if err != nil {
		log.Fatal().Err(err).Msg("No transaction found in input")
	}

	tx := ext.Transaction("cli", civil.DateOf(time.Now()))
	fmt.Printf("kind:        %s\n", tx.Kind)
	fmt.Printf("description: %s\n", tx.Description)
	fmt.Printf("category:    %s\n", tx.Category)
	fmt.Printf("amount:      %s\n", tx.Amount.StringFixed(2))
	fmt.Printf("date:        %s\n", report.FormatDate(tx.Date))
}

func runResumo(log zerolog.Logger) {
	fs := flag.NewFlagSet("resumo", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	periodExpr := fs.String("period", "mes", "period expression (hoje, semana, mes, dd/mm/yyyy a dd/mm/yyyy)")
	fs.Parse(os.Args[2:])

	if *user == "" {
		log.Fatal().Msg("Usage: cli resumo -user ID [-period EXPR]")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := openRepository(ctx, log)
	defer repo.Close()

	start, end := resolvePeriod(log, *periodExpr)

	txs, err := repo.QueryByPeriod(ctx, *user, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("Query failed")
	}

	fmt.Println(report.PeriodSummary(start, end, txs))
}

func runTotal(log zerolog.Logger) {
	fs := flag.NewFlagSet("total", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	fs.Parse(os.Args[2:])

	if *user == "" {
		log.Fatal().Msg("Usage: cli total -user ID")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := openRepository(ctx, log)
	defer repo.Close()

	totals, err := repo.AggregateByCategory(ctx, *user)
	if err != nil {
		log.Fatal().Err(err).Msg("Aggregation failed")
	}

	fmt.Println(report.CategoryTotals(totals))
}

func runLimpar(log zerolog.Logger) {
	fs := flag.NewFlagSet("limpar", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	confirm := fs.Bool("confirm", false, "actually delete; without it nothing happens")
	fs.Parse(os.Args[2:])

	if *user == "" {
		log.Fatal().Msg("Usage: cli limpar -user ID -confirm")
	}
	if !*confirm {
		fmt.Println("Refusing to delete without -confirm.")
		os.Exit(1)
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := openRepository(ctx, log)
	defer repo.Close()

	if err := repo.PurgeUser(ctx, *user); err != nil {
		log.Fatal().Err(err).Msg("Purge failed")
	}

	fmt.Printf("All data of user %s deleted.\n", *user)
}

func runExport(log zerolog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	periodExpr := fs.String("period", "mes", "period expression")
	bucket := fs.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket name (or set GCS_BUCKET env)")
	fs.Parse(os.Args[2:])

	if *user == "" || *bucket == "" {
		log.Fatal().Msg("Usage: cli export -user ID -bucket NAME [-period EXPR]")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := openRepository(ctx, log)
	defer repo.Close()

	start, end := resolvePeriod(log, *periodExpr)

	txs, err := repo.QueryByPeriod(ctx, *user, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("Query failed")
	}

	objectName, err := exporter.Export(ctx, *bucket, *user, txs, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Exported %d transactions to gs://%s/%s\n", len(txs), *bucket, objectName)
}

func runNotionSync(log zerolog.Logger) {
	fs := flag.NewFlagSet("notion-sync", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	periodExpr := fs.String("period", "mes", "period expression")
	dryRun := fs.Bool("dry-run", false, "log what would change without writing")
	fs.Parse(os.Args[2:])

	if *user == "" {
		log.Fatal().Msg("Usage: cli notion-sync -user ID [-period EXPR] [-dry-run]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.NotionToken == "" || cfg.NotionDatabaseID == "" {
		log.Fatal().Msg("NOTION_TOKEN and NOTION_DATABASE_ID are required")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := openRepository(ctx, log)
	defer repo.Close()

	start, end := resolvePeriod(log, *periodExpr)

	pages := notion.NewClient(cfg.NotionToken)
	if err := notion.SyncUser(ctx, repo, pages, cfg.NotionDatabaseID, *user, start, end, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Notion sync failed")
	}

	if *dryRun {
		fmt.Println("Dry run completed; nothing was written.")
	} else {
		fmt.Println("Notion sync completed.")
	}
}
