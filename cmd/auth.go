package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/icu"
	"github.com/teemow/intervals-mcp/internal/logging"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Configure Intervals.icu API credentials",
		Long: `Interactively configure the Intervals.icu athlete ID and API key.

The API key can be generated at https://intervals.icu/settings under
"Developer Settings". Credentials are verified against the API before
they are stored in the user config directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runAuth(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Athlete ID (e.g. i12345): ")
	athleteID, err := readLine(reader)
	if err != nil {
		return fmt.Errorf("failed to read athlete ID: %w", err)
	}

	fmt.Fprint(out, "API key: ")
	apiKey, err := readLine(reader)
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	cfg := config.New()
	cfg.AthleteID = athleteID
	cfg.APIKey = apiKey
	if !cfg.HasCredentials() {
		return fmt.Errorf("athlete ID and API key must both be provided")
	}

	// Verify before saving so a typo does not end up in the config file.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := icu.NewClient(cfg.AthleteID, cfg.APIKey)
	if _, err := client.ListSportSettings(ctx); err != nil {
		return fmt.Errorf("credential check against Intervals.icu failed: %w", err)
	}

	logger := logging.WithOperation(slog.Default(), "auth")
	logger.Info("credentials verified",
		logging.Athlete(cfg.AthleteID),
		slog.String("api_key", logging.SanitizeToken(cfg.APIKey)))

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Credentials verified and saved to %s\n", path)
	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
