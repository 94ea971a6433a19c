package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Void-n-Null/MiniCouncil/internal/config"
	"github.com/Void-n-Null/MiniCouncil/internal/dependency"
	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

var (
	chatMessage string
	chatSession string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the agent",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single message and exit")
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "Session key for the persisted transcript (default: random)")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(cfg)
	if err != nil {
		var ce *schema.ConfigurationError
		if errors.As(err, &ce) {
			return errors.New(ce.Reason)
		}
		return err
	}

	sessionKey := chatSession
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}

	if chatMessage != "" {
		return runSingleMessage(container, sessionKey)
	}
	return runInteractive(container, sessionKey)
}

// runSingleMessage runs one conversation to completion and prints the answer.
func runSingleMessage(container *dependency.Container, sessionKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conv := container.NewConversation()
	orch := container.NewOrchestrator(conv)

	fmt.Fprintln(os.Stderr, "  ↳ thinking...")
	answer, err := orch.Run(ctx, chatMessage)
	if err != nil {
		return err
	}
	printResponse(answer)

	return container.Sessions().Save(sessionKey, conv.Snapshot())
}

// runInteractive starts the REPL: each line extends the same transcript, and
// a fresh orchestrator drives each exchange to its final answer.
func runInteractive(container *dependency.Container, sessionKey string) error {
	fmt.Println("Interactive mode (type 'exit' or Ctrl+C to quit)")
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listenForSignals(cancel)

	conv := container.NewConversation()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		orch := container.NewOrchestrator(conv)
		answer, err := orch.Run(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		printResponse(answer)

		if err := container.Sessions().Save(sessionKey, conv.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save session: %v\n", err)
		}
	}
}

// listenForSignals cancels ctx on SIGINT or SIGTERM and exits.
func listenForSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		cancel()
		os.Exit(0)
	}()
}

func printResponse(text string) {
	fmt.Printf("\nminicouncil\n%s\n\n", text)
}
