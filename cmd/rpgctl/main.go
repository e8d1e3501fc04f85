package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rpgmanager/internal/client"
	"rpgmanager/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// tokenFilePath returns ~/.rpgmanager/token.
func tokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".rpgmanager", "token"), nil
}

// readToken returns the auth token using precedence: env var > file > empty.
func readToken() string {
	if tok := os.Getenv("RPGMANAGER_TOKEN"); tok != "" {
		return tok
	}
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func run() error {
	apiURL := os.Getenv("RPGMANAGER_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(apiURL, os.Args[2:])
		case "logout":
			return runLogout()
		case "accept":
			return runAccept(apiURL)
		}
	}

	token := readToken()
	if token == "" {
		fmt.Println("Not signed in. Run: rpgctl login <email>")
		return nil
	}
	c := client.New(apiURL, token)
	if _, err := c.Me(context.Background()); err != nil {
		if client.IsStatus(err, 401) {
			fmt.Println("Session expired. Run: rpgctl login <email>")
			return nil
		}
		// Server unreachable: open the UI anyway, list errors show inline.
	}

	campaigns, scenarios, npcs, sessions := c.Stores()
	return tui.Run(tui.Stores{
		Campaigns: campaigns,
		Scenarios: scenarios,
		NPCs:      npcs,
		Sessions:  sessions,
	})
}

// runLogin signs in with a password read from RPGMANAGER_PASSWORD or stdin
// and stores the access token.
func runLogin(apiURL string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rpgctl login <email>")
	}
	email := args[0]

	password := os.Getenv("RPGMANAGER_PASSWORD")
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	session, err := client.New(apiURL, "").Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(session.AccessToken+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Printf("Signed in as %s\n", email)
	return nil
}

func runLogout() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}

// runAccept activates a pending campaign invitation for the signed-in user.
func runAccept(apiURL string) error {
	token := readToken()
	if token == "" {
		return fmt.Errorf("not signed in")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := client.New(apiURL, token).AcceptInvitation(ctx)
	if err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	switch {
	case res.Activated:
		fmt.Printf("Joined campaign %s\n", res.CampaignID)
	case res.CampaignID != "":
		fmt.Printf("Already a member of campaign %s\n", res.CampaignID)
	default:
		fmt.Println("No pending invitation")
	}
	return nil
}

func printHelp() {
	fmt.Print(`rpgctl - campaign manager in the terminal

Usage:
  rpgctl                 open the campaign browser
  rpgctl login <email>   sign in (password from RPGMANAGER_PASSWORD or stdin)
  rpgctl logout          forget the stored token
  rpgctl accept          accept the invitation you signed in with

Environment:
  RPGMANAGER_API_URL     server base URL (default http://localhost:8080)
  RPGMANAGER_TOKEN       access token, overrides the stored one
`)
}
