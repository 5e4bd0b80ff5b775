package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/jcleary/roundsheet/internal/auth"
	"github.com/jcleary/roundsheet/internal/browser"
	"github.com/jcleary/roundsheet/internal/export"
	"github.com/jcleary/roundsheet/internal/logger"
	"github.com/jcleary/roundsheet/internal/pipeline"
)

const defaultBaseURL = "https://play.golfshot.com"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Log in, crawl your rounds, and export scoring statistics",
	Long: `Export logs into Golfshot with your credentials, paginates your
rounds history, extracts each round's scorecard, and writes a CSV summary
plus a JSON file with full hole-by-hole detail.

Credentials are read from --email/--password, the ROUNDSHEET_EMAIL and
ROUNDSHEET_PASSWORD environment variables, or the config file; anything
missing is prompted for interactively.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()

	// Account
	flags.String("email", "", "Golfshot account email")
	flags.String("password", "", "Golfshot account password (prefer env or prompt)")
	flags.String("profile", "", "Golfshot profile ID (builds the rounds listing URL)")
	flags.String("listing-url", "", "rounds listing URL (overrides --profile)")
	flags.String("login-url", defaultBaseURL+"/login", "login page URL")

	// Output
	flags.String("csv", "golfshot_scores.csv", "CSV output file (summary rows)")
	flags.String("json", "golfshot_scores.json", "JSON output file (full hole detail)")
	flags.String("yaml", "", "optional YAML output file")

	// Crawl behavior
	flags.Int("max-pages", 0, "max listing pages to visit (0 = default bound)")
	flags.Duration("delay", time.Second, "pause between round visits")
	flags.Duration("timeout", 30*time.Second, "per-navigation timeout")
	flags.Bool("headful", false, "show the browser window")

	_ = viper.BindPFlag("email", flags.Lookup("email"))
	_ = viper.BindPFlag("password", flags.Lookup("password"))
	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
}

func runExport(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	listingURL, err := resolveListingURL(cmd)
	if err != nil {
		return err
	}

	creds, err := resolveCredentials()
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	headful, _ := cmd.Flags().GetBool("headful")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	delay, _ := cmd.Flags().GetDuration("delay")
	loginURL, _ := cmd.Flags().GetString("login-url")

	sessionCfg := browser.DefaultConfig()
	sessionCfg.Timeout = timeout
	sessionCfg.Headful = headful

	session, err := browser.NewSession(sessionCfg)
	if err != nil {
		logger.Error("failed to start browser", "error", err)
		return err
	}
	defer func() { _ = session.Close() }()

	p := pipeline.New(session, pipeline.Config{
		LoginURL:   loginURL,
		ListingURL: listingURL,
		MaxPages:   maxPages,
		Delay:      delay,
		Timeout:    timeout,
	})

	report, runErr := p.Run(ctx, creds)
	if runErr != nil {
		logger.Error("run aborted", "error", runErr)
		if report == nil || len(report.Rounds) == 0 {
			return runErr
		}
		// Partial results are still exported rather than discarded.
		logger.Warn("exporting partial results", "rounds", len(report.Rounds))
	}

	for _, failure := range report.Failures {
		logger.Warn("round not exported", "url", failure.URL, "reason", failure.Reason)
	}

	if len(report.Rounds) == 0 {
		return fmt.Errorf("no rounds exported (%d failures)", len(report.Failures))
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	jsonPath, _ := cmd.Flags().GetString("json")
	yamlPath, _ := cmd.Flags().GetString("yaml")

	if err := export.WriteFile(csvPath, export.FormatCSV, report.Rounds); err != nil {
		logger.Error("CSV export failed", "error", err)
		return err
	}
	logger.Info("wrote CSV", "path", csvPath, "rounds", len(report.Rounds))

	if err := export.WriteFile(jsonPath, export.FormatJSON, report.Rounds); err != nil {
		logger.Error("JSON export failed", "error", err)
		return err
	}
	logger.Info("wrote JSON", "path", jsonPath, "rounds", len(report.Rounds))

	if yamlPath != "" {
		if err := export.WriteFile(yamlPath, export.FormatYAML, report.Rounds); err != nil {
			logger.Error("YAML export failed", "error", err)
			return err
		}
		logger.Info("wrote YAML", "path", yamlPath, "rounds", len(report.Rounds))
	}

	logger.Info("export complete",
		"exported", len(report.Rounds),
		"failed", len(report.Failures))
	return runErr
}

// resolveListingURL builds the rounds listing URL from --listing-url or
// --profile.
func resolveListingURL(cmd *cobra.Command) (string, error) {
	if listingURL, _ := cmd.Flags().GetString("listing-url"); listingURL != "" {
		return listingURL, nil
	}
	if profile := viper.GetString("profile"); profile != "" {
		return fmt.Sprintf("%s/profiles/%s/rounds", defaultBaseURL, profile), nil
	}
	return "", fmt.Errorf("either --profile or --listing-url is required")
}

// resolveCredentials reads credentials from flags/env/config and prompts
// for anything missing. The password prompt does not echo.
func resolveCredentials() (auth.Credentials, error) {
	creds := auth.Credentials{
		Email:    viper.GetString("email"),
		Password: viper.GetString("password"),
	}

	if creds.Email == "" {
		fmt.Fprint(os.Stderr, "Golfshot email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return creds, fmt.Errorf("read email: %w", err)
		}
		creds.Email = strings.TrimSpace(line)
	}

	if creds.Password == "" {
		fmt.Fprint(os.Stderr, "Golfshot password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return creds, fmt.Errorf("read password: %w", err)
		}
		creds.Password = string(secret)
	}

	if creds.Email == "" || creds.Password == "" {
		return creds, fmt.Errorf("email and password are required")
	}
	return creds, nil
}
