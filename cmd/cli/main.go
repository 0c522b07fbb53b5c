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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mybank-cli",
		Short: "MyBank CLI tool",
		Long:  `A command line interface for interacting with the MyBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the MyBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCommand())
	rootCmd.AddCommand(transferCommand())
	rootCmd.AddCommand(ledgerCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var ownerID, accountType, currency string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts", map[string]string{
				"owner_id":     ownerID,
				"account_type": accountType,
				"currency":     currency,
			})
		},
	}
	openCmd.Flags().StringVar(&ownerID, "owner", "", "Owner user ID")
	openCmd.Flags().StringVar(&accountType, "type", "checking", "Account type (checking, savings, money_market)")
	openCmd.Flags().StringVar(&currency, "currency", "USD", "Account currency")
	_ = openCmd.MarkFlagRequired("owner")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	var amount, amountCurrency, description string
	depositCmd := &cobra.Command{
		Use:   "deposit <account-id>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/deposits", map[string]string{
				"amount":      amount,
				"currency":    amountCurrency,
				"description": description,
			})
		},
	}
	withdrawCmd := &cobra.Command{
		Use:   "withdraw <account-id>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/withdrawals", map[string]string{
				"amount":      amount,
				"currency":    amountCurrency,
				"description": description,
			})
		},
	}
	for _, cmd := range []*cobra.Command{depositCmd, withdrawCmd} {
		cmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 100.50")
		cmd.Flags().StringVar(&amountCurrency, "currency", "USD", "Currency")
		cmd.Flags().StringVar(&description, "description", "", "Description")
		_ = cmd.MarkFlagRequired("amount")
	}

	for _, status := range []string{"freeze", "unfreeze", "close"} {
		status := status
		accountCmd.AddCommand(&cobra.Command{
			Use:   status + " <account-id>",
			Short: capitalize(status) + " an account",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				postJSON("/api/v1/accounts/"+args[0]+"/"+status, nil)
			},
		})
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List the ledger entries of an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/transactions")
		},
	}

	accountCmd.AddCommand(openCmd, getCmd, depositCmd, withdrawCmd, transactionsCmd)
	return accountCmd
}

func transferCommand() *cobra.Command {
	var source, destination, amount, currency, description string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]string{
				"source_account_id":      source,
				"destination_account_id": destination,
				"amount":                 amount,
				"currency":               currency,
				"description":            description,
			})
		},
	}
	transferCmd.Flags().StringVar(&source, "from", "", "Source account ID")
	transferCmd.Flags().StringVar(&destination, "to", "", "Destination account ID")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 100.50")
	transferCmd.Flags().StringVar(&currency, "currency", "USD", "Currency")
	transferCmd.Flags().StringVar(&description, "description", "", "Description")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")
	return transferCmd
}

func ledgerCommand() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})
	return ledgerCmd
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func postJSON(path string, payload map[string]string) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(encoded)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, pretty.String())
		os.Exit(1)
	}
	fmt.Println(pretty.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
