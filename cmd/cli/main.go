package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fxreport-cli",
		Short: "FX balance report CLI tool",
		Long:  `A command line interface for the multi-currency balance report API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the report API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(currenciesCmd())
	rootCmd.AddCommand(balancesCmd())
	rootCmd.AddCommand(detailCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(preloadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currency catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/currencies")
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func balancesCmd() *cobra.Command {
	var channels []int

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Fetch the balance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := post("/api/v1/reports/balances", map[string]any{
				"channels": channels,
			})
			if err != nil {
				return err
			}
			return printBalances(body)
		},
	}

	cmd.Flags().IntSliceVar(&channels, "channels", nil, "Currency identifiers to include (empty means all)")
	return cmd
}

func detailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <account-id>",
		Short: "Read cached transaction detail for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/reports/detail/" + args[0])
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <account-id>",
		Short: "Force-fetch transaction detail for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := post("/api/v1/reports/detail/"+args[0]+"/refresh", nil)
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func preloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preload <account-id>...",
		Short: "Trigger a background detail preload for a set of accounts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := post("/api/v1/reports/detail/preload", map[string]any{
				"account_ids": args,
			})
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return readResponse(resp)
}

func post(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return readResponse(resp)
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// printBalances renders the balance report as a fixed-width table, one
// currency column group per channel present in the response.
func printBalances(body []byte) error {
	var report struct {
		Rows []struct {
			AccountCode string `json:"account_code"`
			AccountName string `json:"account_name"`
			Channels    map[string]struct {
				Balance     *string `json:"balance"`
				Indicator   string  `json:"indicator"`
				HasActivity bool    `json:"has_activity"`
			} `json:"channels"`
		} `json:"rows"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	codes := map[string]struct{}{}
	for _, row := range report.Rows {
		for code := range row.Channels {
			codes[code] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(codes))
	for code := range codes {
		ordered = append(ordered, code)
	}
	sort.Strings(ordered)

	fmt.Printf("%-12s %-30s", "CODE", "NAME")
	for _, code := range ordered {
		fmt.Printf(" %18s", code)
	}
	fmt.Println()

	for _, row := range report.Rows {
		fmt.Printf("%-12s %-30s", truncate(row.AccountCode, 12), truncate(row.AccountName, 30))
		for _, code := range ordered {
			cell := ""
			if ch, ok := row.Channels[code]; ok && ch.HasActivity && ch.Balance != nil {
				cell = *ch.Balance + " " + ch.Indicator
			}
			fmt.Printf(" %18s", cell)
		}
		fmt.Println()
	}
	fmt.Printf("\n%d accounts\n", report.Total)
	return nil
}

func printRawJSON(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	printJSON(v)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
