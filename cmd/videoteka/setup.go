package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/rsekulic/videoteka-v1/internal/config"
	"github.com/rsekulic/videoteka-v1/internal/remote"
	"github.com/rsekulic/videoteka-v1/internal/tui/styles"
	"golang.org/x/term"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// runSetupFlow asks for the store connection and credentials, then saves the config
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("Welcome to Videoteka!")
	fmt.Println()

	for {
		backend, err := prompt(reader, "Store backend [sqlite/postgres/supabase]", string(cfg.Store.Backend))
		if err != nil {
			return err
		}
		switch config.BackendType(strings.ToLower(backend)) {
		case config.BackendSQLite, config.BackendPostgres, config.BackendSupabase:
			cfg.Store.Backend = config.BackendType(strings.ToLower(backend))
		default:
			fmt.Println("Unknown backend. Please try again.")
			continue
		}
		break
	}

	var err error
	if cfg.Store.Backend == config.BackendSupabase {
		if cfg.Store.URL, err = prompt(reader, "Project URL", cfg.Store.URL); err != nil {
			return err
		}
		if cfg.Store.AnonKey, err = prompt(reader, "Anon key", cfg.Store.AnonKey); err != nil {
			return err
		}
	} else {
		if cfg.Store.DSN, err = prompt(reader, "Connection string", cfg.Store.DSN); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("Metadata lookups (leave empty to skip)")
	if cfg.Metadata.TMDBToken, err = promptSecret("TMDB read access token", cfg.Metadata.TMDBToken); err != nil {
		return err
	}
	if cfg.Metadata.GeminiAPIKey, err = promptSecret("Gemini API key", cfg.Metadata.GeminiAPIKey); err != nil {
		return err
	}

	if !cfg.IsConfigured() {
		return fmt.Errorf("store connection is incomplete")
	}

	fmt.Println()
	backend, err := connectWithSpinner(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer backend.Close()

	if provisioner, ok := backend.(remote.AdminProvisioner); ok {
		if err := provisionAdmin(reader, provisioner); err != nil {
			return err
		}
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run videoteka again to start the application.")

	return nil
}

// provisionAdmin creates or updates the admin account of a SQL store
func provisionAdmin(reader *bufio.Reader, provisioner remote.AdminProvisioner) error {
	fmt.Println()
	fmt.Println("Admin Account")
	fmt.Println("━━━━━━━━━━━━━")

	email, err := prompt(reader, "Email", "")
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Println("Skipped. Sign-in will stay unavailable until an admin exists.")
		return nil
	}
	password, err := promptSecret("Password", "")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := provisioner.EnsureAdmin(ctx, email, password); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	fmt.Println("✓ Admin account ready.")
	return nil
}

// connectWithSpinner opens the configured backend with a visual spinner
func connectWithSpinner(cfg *config.Config, logger *slog.Logger) (remote.Backend, error) {
	type result struct {
		backend remote.Backend
		err     error
	}
	resultCh := make(chan result, 1)

	go func() {
		backend, err := remote.NewClient(cfg, logger)
		resultCh <- result{backend, err}
	}()

	frame := 0
	fmt.Printf("\r%s Connecting to store...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				return nil, res.err
			}
			if _, offline := res.backend.(*remote.Offline); offline {
				fmt.Println("! Store unreachable, settings will be saved anyway")
			} else {
				fmt.Printf("✓ Connected: %s\n", cfg.Store.Backend)
			}
			return res.backend, nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting to store...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}

// prompt reads one line, returning def when the answer is empty
func prompt(reader *bufio.Reader, label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if v := strings.TrimSpace(input); v != "" {
		return v, nil
	}
	return def, nil
}

// promptSecret reads hidden input, keeping def when the answer is empty
func promptSecret(label, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [keep current]: ", label)
	} else {
		fmt.Printf("%s: ", label)
	}
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if v := strings.TrimSpace(string(secret)); v != "" {
		return v, nil
	}
	return def, nil
}
