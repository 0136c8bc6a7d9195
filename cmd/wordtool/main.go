package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tinywords/internal/audio"
	"tinywords/internal/catalog"
	"tinywords/internal/challenge"
	"tinywords/internal/config"
	"tinywords/internal/database"
	"tinywords/internal/images"
	"tinywords/internal/models"
	"tinywords/internal/repository"
	"tinywords/internal/service"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	annotateCmd := flag.NewFlagSet("annotate", flag.ExitOnError)
	gapsCmd := flag.NewFlagSet("gaps", flag.ExitOnError)
	audioCmd := flag.NewFlagSet("audio", flag.ExitOnError)
	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	annotateOutput := annotateCmd.String("output", "", "Output file path (default: overwrite the catalog)")
	annotateDryRun := annotateCmd.Bool("dry-run", false, "Report changed words without writing")

	gapsLevel := gapsCmd.Int("level", 0, "Level to check, 1-5 (default: all levels)")

	audioPrune := audioCmd.Bool("prune", false, "Delete cached audio for words no longer in the catalog")

	reportPlayer := reportCmd.String("player", "", "Player ID (required)")
	reportDays := reportCmd.Int("days", 7, "Number of days the report covers")

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		handleValidate(cfg.CatalogPath)

	case "annotate":
		annotateCmd.Parse(os.Args[2:])
		output := *annotateOutput
		if output == "" {
			output = cfg.CatalogPath
		}
		handleAnnotate(cfg.CatalogPath, output, *annotateDryRun)

	case "gaps":
		gapsCmd.Parse(os.Args[2:])
		handleGaps(cfg.CatalogPath, *gapsLevel)

	case "audio":
		audioCmd.Parse(os.Args[2:])
		handleAudio(cfg, *audioPrune)

	case "report":
		reportCmd.Parse(os.Args[2:])
		if *reportPlayer == "" {
			fmt.Println("Error: -player flag is required")
			reportCmd.PrintDefaults()
			os.Exit(1)
		}
		handleReport(cfg, *reportPlayer, *reportDays)

	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(cfg, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(cfg, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func readCatalog(path string) *catalog.Result {
	result, err := catalog.Read(path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	return result
}

func handleValidate(path string) {
	result := readCatalog(path)
	issues := append(result.Dropped, catalog.Check(result.Words)...)

	for _, issue := range issues {
		fmt.Println(issue)
	}
	log.Printf("Checked %d words: %d dropped, %d problems", len(result.Words)+len(result.Dropped), len(result.Dropped), len(issues)-len(result.Dropped))
	if len(issues) > 0 {
		os.Exit(1)
	}
}

func handleAnnotate(path, output string, dryRun bool) {
	result := readCatalog(path)

	changed := 0
	annotated := make([]models.WordDefinition, 0, len(result.Words))
	for _, w := range result.Words {
		a := catalog.Annotate(w)
		if a.PhonicComplexity != w.PhonicComplexity || a.SoundType.Pattern != w.SoundType.Pattern || len(a.Tags) != len(w.Tags) {
			fmt.Printf("%s: complexity %d -> %d, pattern %s -> %s\n", w.TargetWord, w.PhonicComplexity, a.PhonicComplexity, w.SoundType.Pattern, a.SoundType.Pattern)
			changed++
		}
		annotated = append(annotated, a)
	}

	if dryRun {
		log.Printf("Dry run: %d of %d words would change", changed, len(annotated))
		return
	}
	if err := catalog.Save(output, annotated); err != nil {
		log.Fatalf("Failed to save catalog: %v", err)
	}
	log.Printf("Annotated %d words (%d changed) into %s", len(annotated), changed, output)
}

func handleGaps(path string, level int) {
	gen := challenge.NewGenerator(readCatalog(path).Words, images.Headless{}, challenge.FixedOrder{})

	levels := models.AllLevels
	if level != 0 {
		levels = []int{level}
	}

	total := 0
	for _, l := range levels {
		gaps := gen.DistractorGaps(l)
		for _, word := range gaps {
			fmt.Printf("level %d: %s\n", l, word)
		}
		total += len(gaps)
	}
	log.Printf("%d words without sound-matched distractors", total)
}

func handleAudio(cfg *config.Config, prune bool) {
	words := readCatalog(cfg.CatalogPath).Words
	spoken, err := service.LoadSpokenContent(cfg.SpokenContentPath)
	if err != nil {
		log.Fatalf("Failed to load spoken content: %v", err)
	}

	tts := audio.NewTTSService(cfg.AudioPath, cfg.TTSEndpoint)
	ctx := context.Background()

	targets := make([]string, 0, len(words))
	for _, w := range words {
		targets = append(targets, w.TargetWord)
	}
	generated, err := tts.BatchGenerateAudio(ctx, targets)
	if err != nil {
		log.Fatalf("Audio generation stopped: %v", err)
	}

	keep := make(map[string]bool)
	for _, name := range generated {
		keep[name] = true
	}
	for _, word := range targets {
		keep[audio.CacheName("spell_"+word, 1.0)] = true
	}
	for _, phrase := range spoken.Phrases() {
		name, err := tts.PhraseAudio(ctx, phrase, 1.0)
		if err != nil {
			log.Printf("Warning: failed to generate audio for phrase %q: %v", phrase, err)
			continue
		}
		keep[name] = true
	}
	log.Printf("Audio ready for %d words and %d phrases in %s", len(generated), len(spoken.Phrases()), tts.Dir())

	if !prune {
		return
	}
	removed, err := tts.PruneAudioFiles(keep)
	if err != nil {
		log.Fatalf("Failed to prune audio: %v", err)
	}
	for _, name := range removed {
		log.Printf("Removed %s", name)
	}
	log.Printf("Pruned %d audio files", len(removed))
}

func openDatabase(cfg *config.Config) *database.DB {
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func handleExport(cfg *config.Config, outputPath string) {
	db := openDatabase(cfg)
	defer db.Close()

	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting database to: %s", outputPath)
	if err := service.NewBackupService(db).Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}

func handleImport(cfg *config.Config, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	db := openDatabase(cfg)
	defer db.Close()
	backups := service.NewBackupService(db)

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}

		log.Println("Clearing existing data...")
		if err := backups.Clear(); err != nil {
			log.Fatalf("Failed to clear database: %v", err)
		}
	}

	if err := backups.Import(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import complete!")
}

func handleReport(cfg *config.Config, playerID string, days int) {
	db := openDatabase(cfg)
	defer db.Close()

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	reports := service.NewReportService(
		repository.NewPlayerRepository(db),
		repository.NewScoreRepository(db),
		repository.NewRoundRepository(db),
		emailService,
	)

	since := time.Now().UTC().AddDate(0, 0, -days)
	summary, err := reports.SendReport(context.Background(), playerID, since)
	if err != nil {
		log.Fatalf("Report failed: %v", err)
	}
	log.Printf("Report for %s: %d rounds, %.0f%% right first time", summary.Player.Name, summary.RoundsPlayed, summary.FirstTryPercent())
}

func printUsage() {
	fmt.Println("TinyWords Catalog Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wordtool validate              Check the word catalog for errors")
	fmt.Println("  wordtool annotate [options]    Recompute complexity, sound type and tags")
	fmt.Println("  wordtool gaps [options]        List words without sound-matched distractors")
	fmt.Println("  wordtool audio [options]       Pre-generate speech audio for the catalog")
	fmt.Println("  wordtool report [options]      Email a progress report to a player's parent")
	fmt.Println("  wordtool export [options]      Export players, scores and rounds to JSON")
	fmt.Println("  wordtool import [options]      Import players, scores and rounds from JSON")
	fmt.Println()
	fmt.Println("Annotate Options:")
	fmt.Println("  -output <file>    Output file path (default: overwrite the catalog)")
	fmt.Println("  -dry-run          Report changed words without writing")
	fmt.Println()
	fmt.Println("Gaps Options:")
	fmt.Println("  -level <n>        Level to check, 1-5 (default: all levels)")
	fmt.Println()
	fmt.Println("Audio Options:")
	fmt.Println("  -prune            Delete cached audio for words no longer in the catalog")
	fmt.Println()
	fmt.Println("Report Options:")
	fmt.Println("  -player <id>      Player ID (required)")
	fmt.Println("  -days <n>         Number of days the report covers (default: 7)")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  CATALOG_PATH     Word catalog (default: ./data/word_definitions.json)")
	fmt.Println("  AUDIO_PATH       Audio cache directory (default: ./static/audio)")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./tinywords.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  SES_FROM_EMAIL   Sender address for reports (reports are skipped when empty)")
}
