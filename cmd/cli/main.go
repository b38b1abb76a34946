package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fincontrol-cli",
		Short: "FinControl CLI tool",
		Long:  `A command line interface for interacting with the FinControl API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinControl API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(entryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var (
		name     string
		document string
		balance  string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts", map[string]any{
				"name":            name,
				"document":        document,
				"initial_balance": balance,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account holder name")
	createCmd.Flags().StringVar(&document, "document", "", "Account holder document")
	createCmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("document")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance [id]",
		Short: "Get the current balance of an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0])+"/balance", nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, balanceCmd, listCmd)

	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Ledger entry operations",
	}

	var (
		accountID string
		kind      string
		amount    string
		date      string
		category  string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an entry against an account",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts/"+url.PathEscape(accountID)+"/entries", map[string]any{
				"kind":     kind,
				"amount":   amount,
				"date":     date,
				"category": category,
			})
		},
	}
	addCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	addCmd.Flags().StringVar(&kind, "kind", "", "Entry kind (credit or debit)")
	addCmd.Flags().StringVar(&amount, "amount", "", "Entry amount")
	addCmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&category, "category", "other", "Entry category")
	addCmd.MarkFlagRequired("account")
	addCmd.MarkFlagRequired("kind")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("date")

	deleteCmd := &cobra.Command{
		Use:   "delete [entryID]",
		Short: "Delete an entry and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodDelete, "/api/v1/accounts/"+url.PathEscape(accountID)+"/entries/"+url.PathEscape(args[0]), nil)
		},
	}
	deleteCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	deleteCmd.MarkFlagRequired("account")

	var (
		month int
		year  int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries of an account",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, entryListPath(accountID, month, year, category), nil)
		},
	}
	listCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	listCmd.Flags().IntVar(&month, "month", 0, "Filter by month (requires --year)")
	listCmd.Flags().IntVar(&year, "year", 0, "Filter by year")
	listCmd.Flags().StringVar(&category, "category", "", "Filter by category")
	listCmd.MarkFlagRequired("account")

	cmd.AddCommand(addCmd, deleteCmd, listCmd)

	return cmd
}

// entryListPath builds the listing path, picking the most specific filter.
func entryListPath(accountID string, month, year int, category string) string {
	path := "/api/v1/accounts/" + url.PathEscape(accountID) + "/entries"
	switch {
	case month > 0:
		path += fmt.Sprintf("/by-month?month=%d&year=%d", month, year)
	case year > 0:
		path += fmt.Sprintf("/by-year?year=%d", year)
	case category != "":
		path += "/by-category?category=" + url.QueryEscape(category)
	}
	return path
}

func doJSON(method, path string, payload any) {
	client := &http.Client{Timeout: timeout}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	printResponse(respBody)
}

// printResponse pretty-prints JSON bodies, falling back to raw output.
func printResponse(body []byte) {
	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
		return
	}

	fmt.Println(string(body))
}
