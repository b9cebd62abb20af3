// Package main provides a CLI for one-shot value scans and accuracy reports.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/poisson"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/service"
)

var (
	configFile string
	minEV      float64
	stake      float64
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories

	homeAvg     float64
	awayAvg     float64
	homeAllowed float64
	awayAllowed float64
	homeOdds    float64
	awayOdds    float64
	probsStake  float64
	maxRuns     int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().Float64Var(&minEV, "min-ev", 0, "Override the minimum expected value threshold")
	rootCmd.Flags().Float64Var(&stake, "stake", 0, "Override the stake used for expected value")

	probsCmd.Flags().Float64Var(&homeAvg, "home-avg", 0, "Home team average runs scored per game")
	probsCmd.Flags().Float64Var(&awayAvg, "away-avg", 0, "Away team average runs scored per game")
	probsCmd.Flags().Float64Var(&homeAllowed, "home-allowed", 0, "Home team average runs allowed per game")
	probsCmd.Flags().Float64Var(&awayAllowed, "away-allowed", 0, "Away team average runs allowed per game")
	probsCmd.Flags().Float64Var(&homeOdds, "home-odds", 0, "American moneyline odds on the home side")
	probsCmd.Flags().Float64Var(&awayOdds, "away-odds", 0, "American moneyline odds on the away side")
	probsCmd.Flags().Float64Var(&probsStake, "stake", 100, "Stake used for expected value")
	probsCmd.Flags().IntVar(&maxRuns, "max-runs", poisson.DefaultMaxRuns, "Maximum runs per team to model")

	rootCmd.AddCommand(accuracyCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(probsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "evreport",
	Short: "Scan the current moneyline board for positive expected value",
	Long:  `Models every quoted MLB matchup from stored team run profiles and reports the moneyline sides with positive expected value.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan()
	},
}

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Report the model's rolling winner-pick accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAccuracy()
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently identified value bets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecent()
	},
}

var probsCmd = &cobra.Command{
	Use:   "probs",
	Short: "Model a single matchup from four run rates",
	Long:  `Prints the modeled run distributions, outcome probabilities and optional moneyline expected values for one matchup. Runs entirely from the given rates; no database or feeds are touched.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProbs()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			return err
		}
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var err error
	db, err = database.NewDB(context.Background(), &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func runScan() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	scanCfg := service.ScannerConfig{
		MaxRuns:          cfg.Analytics.MaxRuns,
		ModelName:        cfg.Analytics.ModelName,
		MinExpectedValue: cfg.Analytics.MinExpectedValue,
		DefaultStake:     cfg.Analytics.DefaultStake,
	}
	if minEV > 0 {
		scanCfg.MinExpectedValue = minEV
	}
	if stake > 0 {
		scanCfg.DefaultStake = stake
	}

	oddsHTTP := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:           cfg.OddsAPITimeout(),
		MaxRetries:        cfg.OddsAPI.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.OddsAPI.RequestsPerSecond,
		CircuitBreakerMax: 5,
	}, logger)
	defer oddsHTTP.Close()

	oddsClient := datasource.NewOddsAPIClient(oddsHTTP, cfg.OddsAPI.BaseURL, cfg.OddsAPI.APIKey, logger)
	profiles := service.NewProfileBuilder(repos.Game, repos.TeamProfile,
		cfg.Analytics.ProfileWindowDays, cfg.ProfileCacheTTL(), logger)
	scanner := service.NewValueScanner(oddsClient, profiles, repos.Game,
		repos.Prediction, repos.ValueBet, scanCfg, logger)

	bets, err := scanner.ScanSlate(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printBets(bets, scanCfg.DefaultStake)
	return nil
}

func runAccuracy() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -cfg.Analytics.ProfileWindowDays)
	accuracy, err := repos.Prediction.GetAccuracy(ctx, cfg.Analytics.ModelName, since)
	if err != nil {
		return fmt.Errorf("failed to compute accuracy: %w", err)
	}

	fmt.Printf("\nModel:    %s\n", cfg.Analytics.ModelName)
	fmt.Printf("Window:   last %d days\n", cfg.Analytics.ProfileWindowDays)
	fmt.Printf("Accuracy: %.1f%%\n\n", accuracy*100)
	return nil
}

func runRecent() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bets, err := repos.ValueBet.GetRecent(ctx, 20)
	if err != nil {
		return fmt.Errorf("failed to load recent value bets: %w", err)
	}

	printBets(bets, cfg.Analytics.DefaultStake)
	return nil
}

func runProbs() error {
	probs, err := poisson.EstimateGameProbabilities(homeAvg, awayAvg, homeAllowed, awayAllowed, maxRuns)
	if err != nil {
		return fmt.Errorf("failed to model matchup: %w", err)
	}

	homeDist, err := poisson.EstimateRunDistribution(homeAvg, awayAllowed, maxRuns)
	if err != nil {
		return fmt.Errorf("failed to model home runs: %w", err)
	}
	awayDist, err := poisson.EstimateRunDistribution(awayAvg, homeAllowed, maxRuns)
	if err != nil {
		return fmt.Errorf("failed to model away runs: %w", err)
	}

	fmt.Printf("\n%4s %8s %8s\n", "RUNS", "HOME", "AWAY")
	for r := 0; r <= maxRuns; r++ {
		fmt.Printf("%4d %7.2f%% %7.2f%%\n", r, homeDist[r]*100, awayDist[r]*100)
	}

	fmt.Printf("\nHome expected runs: %.2f\n", probs.HomeExpectedRuns)
	fmt.Printf("Away expected runs: %.2f\n", probs.AwayExpectedRuns)
	fmt.Printf("Total expected runs: %.2f\n\n", probs.TotalExpectedRuns)
	fmt.Printf("Home win: %6.2f%%\n", probs.HomeWinProb*100)
	fmt.Printf("Away win: %6.2f%%\n", probs.AwayWinProb*100)
	fmt.Printf("Tie:      %6.2f%%\n", probs.TieProb*100)

	if homeOdds != 0 {
		ev, err := poisson.ExpectedValue(probs.HomeWinProb, homeOdds, probsStake)
		if err != nil {
			return fmt.Errorf("failed to compute home expected value: %w", err)
		}
		fmt.Printf("\nHome %+.0f EV at %.0f stake: %.2f\n", homeOdds, probsStake, ev)
	}
	if awayOdds != 0 {
		ev, err := poisson.ExpectedValue(probs.AwayWinProb, awayOdds, probsStake)
		if err != nil {
			return fmt.Errorf("failed to compute away expected value: %w", err)
		}
		fmt.Printf("Away %+.0f EV at %.0f stake: %.2f\n", awayOdds, probsStake, ev)
	}
	fmt.Println()

	return nil
}

func printBets(bets []*models.ValueBet, stake float64) {
	if len(bets) == 0 {
		fmt.Println("\nNo value bets found.")
		return
	}

	fmt.Printf("\n%-28s %-6s %8s %8s %10s\n", "TEAM", "SIDE", "ODDS", "WIN%", "EV")
	for _, bet := range bets {
		fmt.Printf("%-28s %-6s %+8.0f %7.1f%% %10s\n",
			bet.Team,
			bet.Side,
			bet.AmericanOdds,
			bet.WinProbability*100,
			bet.ExpectedValue.StringFixed(2),
		)
	}
	fmt.Printf("\n%d value bets at %.0f stake\n\n", len(bets), stake)
}
