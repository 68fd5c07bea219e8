package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/gostatement/internal/infrastructure/config"
	"github.com/iho/gostatement/internal/infrastructure/logger"
	"github.com/iho/gostatement/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gostatement-cli",
		Short: "GoStatement CLI tool",
		Long:  `A command line interface for interacting with the GoStatement API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoStatement API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Session token (from the login command)")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newRegisterCmd(),
		newLoginCmd(),
		newDepositCmd(),
		newWithdrawCmd(),
		newTransferCmd(),
		newBalanceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newMigrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})

			switch args[0] {
			case "up":
				return postgres.RunMigrations(log, cfg.DatabaseURL, migrationsPath)
			case "down":
				return postgres.RunMigrationsDown(log, cfg.DatabaseURL, migrationsPath)
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "path", "internal/infrastructure/postgres/migrations", "Path to migration files")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/users", map[string]any{
				"name":     name,
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&password, "password", "", "User password")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Create a session and print its token",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/sessions", map[string]any{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&password, "password", "", "User password")

	return cmd
}

func newDepositCmd() *cobra.Command {
	var amount, description string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Record a deposit",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/statements/deposit", map[string]any{
				"amount":      amount,
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")

	return cmd
}

func newWithdrawCmd() *cobra.Command {
	var amount, description string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Record a withdrawal",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/statements/withdraw", map[string]any{
				"amount":      amount,
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")

	return cmd
}

func newTransferCmd() *cobra.Command {
	var receiver, amount, description string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds to another user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/statements/transfers/"+receiver, map[string]any{
				"amount":      amount,
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&receiver, "receiver", "", "Receiver user ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")

	return cmd
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the statement and derived balance",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/statements/balance", nil)
		},
	}
}

func doRequest(method, path string, payload map[string]any) {
	client := &http.Client{Timeout: timeout}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Write(raw)
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
