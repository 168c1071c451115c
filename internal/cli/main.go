// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the Codevault
// application using the Cobra library. It defines the root command,
// subcommands (like register, login, account, code), flags, and the main
// entry point for execution.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tverren/codevault/internal/config"
	"github.com/tverren/codevault/internal/db"
	"github.com/tverren/codevault/internal/i18n"
	"github.com/tverren/codevault/internal/logging"
	"github.com/tverren/codevault/internal/security"
	"github.com/tverren/codevault/internal/vault"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var fullRestore bool // Flag for the restore command

var verbose bool
var showVersionFlag bool

var appConfig config.Config

// session and vaultSvc are populated by setupDefaultServices and shared by
// every subcommand. Tests may pre-set them to skip the default wiring.
var session *db.Session
var vaultSvc *vault.Vault

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := map[string]any{
		"database.path": "./codevault.db",
		"language":      "en",
		"debug":         false,
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically. Other errors during loading are fatal.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// This is the first run, or the config file was deleted. Create a default one.
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// Log a warning but don't fail, as the app can run on defaults.
			log.Warnf("Warning: could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Post-process config to ensure critical values are not empty, falling
	// back to defaults. This handles cases where the user's config file has
	// empty values for these fields.
	if appConfig.Database.Path == "" {
		appConfig.Database.Path = defaults["database.path"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	// Initialize i18n
	i18n.Init(appConfig.Language)

	if verbose || appConfig.Debug {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	// Open the database if not already opened by tests or earlier setup.
	if session == nil {
		s, err := db.Open(appConfig.Database.Path)
		if err != nil {
			return errors.New(i18n.T("error.open_db", err))
		}
		session = s
	}
	if vaultSvc == nil {
		vaultSvc = vault.New(session)
	}

	return nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	defer func() {
		if session != nil {
			if err := session.Close(); err != nil {
				log.Errorf("Error closing database: %v", err)
			}
		}
	}()

	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Avoid redefining flags if they already exist (NewRootCmd may be called
	// multiple times in tests which creates a new root but uses package-level
	// subcommands). pflag will panic on duplicate flag definitions, so check
	// first.
	if cmd.Flags().Lookup("database.path") == nil {
		cmd.Flags().String("database.path", "./codevault.db", "Path to the SQLite database file")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codevault",
		Short: "Codevault stores two-factor backup codes per user and account.",
		Long: `Codevault keeps the backup codes that two-factor services hand out.
Every user owns a set of accounts (the services), and every account holds
the backup codes issued for it. Credentials are stored as salted hashes;
the plaintext password never touches the database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				v, c, d := resolveBuildVersion(nil)
				compositeVersion := v
				if c != "" && c != "dev" {
					compositeVersion = compositeVersion + " (" + c + ")"
				}
				if d != "" {
					compositeVersion = compositeVersion + " built: " + d
				}
				fmt.Printf("%s\n", compositeVersion)
				os.Exit(0)
			}
			return setupDefaultServices(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			// Default action: show who is signed in, same as `whoami`.
			whoamiCmd.Run(cmd, args)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets -v for DB logs)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `CLI language ("en", "de")`)
	applyDefaultFlags(cmd)

	applyDefaultFlags(registerCmd)
	applyDefaultFlags(loginCmd)
	applyDefaultFlags(logoutCmd)
	applyDefaultFlags(whoamiCmd)
	applyDefaultFlags(themeCmd)
	applyDefaultFlags(userRmCmd)
	applyDefaultFlags(accountCmd)
	applyDefaultFlags(codeCmd)
	applyDefaultFlags(auditCmd)
	applyDefaultFlags(dbMaintainCmd)
	applyDefaultFlags(backupCmd)
	applyDefaultFlags(restoreCmd)
	if restoreCmd.Flags().Lookup("full") == nil {
		restoreCmd.Flags().BoolVar(&fullRestore, "full", false, "Perform a full, destructive restore (wipes all existing data first)")
	}

	// Add a lightweight `version` subcommand so users and CI can run `codevault version`.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			resolvedVersion, resolvedCommit, resolvedDate := resolveBuildVersion(nil)
			fmt.Printf("version: %s\n", resolvedVersion)
			fmt.Printf("commit: %s\n", resolvedCommit)
			if resolvedDate != "" {
				fmt.Printf("built: %s\n", resolvedDate)
			}
		},
	}

	cmd.AddCommand(
		registerCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		themeCmd,
		userRmCmd,
		accountCmd,
		codeCmd,
		auditCmd,
		dbMaintainCmd,
		backupCmd,
		restoreCmd,
		versionCmd,
	)

	return cmd
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := version
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

// readPassword prompts for a password. On a terminal it reads without echo;
// otherwise it falls back to reading a line from stdin so the commands stay
// scriptable.
func readPassword(prompt string) (security.Secret, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return nil, err
		}
		return security.FromBytes(bytePassword), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return security.FromString(strings.TrimRight(line, "\r\n")), nil
}

// requireLoggedIn returns the active user or prints a hint and reports false.
func requireLoggedIn() (vault.UserView, bool) {
	user, ok := vaultSvc.LoggedInUser()
	if !ok {
		fmt.Println(i18n.T("error.not_logged_in"))
	}
	return user, ok
}
