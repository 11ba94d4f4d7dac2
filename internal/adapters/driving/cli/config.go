package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// Keys written by config init.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySecret     = "notion.secret"
	keyDatabaseID = "notion.database_id"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change eventbox configuration.

Settings are stored in config.toml in the configuration directory. The Notion
secret and database id may also come from the NOTION_SECRET and
NOTION_DATABASE_ID environment variables.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	RunE:  runConfigKeys,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Connect a Notion database",
	Long: `Prompts for the Notion integration secret and the events database id.
The secret is read without echo when stdin is a terminal.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if deps.ConfigPath != "" {
		cmd.Printf("File: %s\n", deps.ConfigPath)
	}
	cmd.Println()

	cmd.Println("[Notion]")
	if settings.Notion.Secret != "" {
		cmd.Printf("  Secret: %s\n", maskSecret(settings.Notion.Secret))
	} else {
		cmd.Println("  Secret: (not set)")
	}
	cmd.Printf("  Database ID: %s\n", valueOrUnset(settings.Notion.DatabaseID))
	cmd.Printf("  Properties: header=%s content=%s date=%s\n",
		settings.Notion.HeaderProperty, settings.Notion.ContentProperty, settings.Notion.DateProperty)
	cmd.Printf("  Page size: %d\n", settings.Notion.PageSize)
	sort := string(settings.Notion.Sort)
	if sort == "" {
		sort = "(database order)"
	}
	cmd.Printf("  Sort: %s\n", sort)
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Truncate length: %d\n", settings.Display.TruncateLength)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Mode: %s\n", settings.Server.Mode.Description())
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Schedule: %s\n", valueOrUnset(settings.Sync.Schedule))
	cmd.Println()

	if err := svc.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'eventbox config init' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nRun 'eventbox config keys' to list valid keys", err)
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == keySecret {
		value = maskSecret(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	for _, key := range svc.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	cmd.Println("Connect a Notion database")
	cmd.Println("=========================")
	cmd.Println("Create an internal integration at https://www.notion.so/my-integrations,")
	cmd.Println("then share the events database with it.")
	cmd.Println()

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	cmd.Print("Integration secret: ")
	secret := readPassword(in, reader)
	cmd.Println()
	if secret == "" {
		return errors.New("a secret is required")
	}

	cmd.Print("Database ID: ")
	databaseID := readLine(reader)
	if databaseID == "" {
		return errors.New("a database id is required")
	}

	if err := svc.Set(keySecret, secret); err != nil {
		return fmt.Errorf("failed to save secret: %w", err)
	}
	if err := svc.Set(keyDatabaseID, databaseID); err != nil {
		return fmt.Errorf("failed to save database id: %w", err)
	}

	if err := svc.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("Configuration saved. Run 'eventbox list' to see your events.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	return readLine(reader)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func valueOrUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
