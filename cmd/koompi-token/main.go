package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/koompi/koompiplay-jwtx"
)

const usage = `usage: koompi-token <issue|verify> [flags]

  issue  -email E -role R   print a signed session token
  verify -token T           verify a token and print its claims

Configuration comes from the environment (or a .env file):
  KOOMPI_TOKEN_SECRET      shared HMAC secret (required)
  KOOMPI_TOKEN_AUDIENCE    expected audience (default koompiPlay)
  KOOMPI_TOKEN_CLOCK_SKEW  tolerated clock skew, e.g. 30s
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "issue":
		err = runIssue(logger, args)
	case "verify":
		err = runVerify(logger, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		attrs := []any{"error", err}
		var tokErr *jwtx.Error
		if errors.As(err, &tokErr) {
			attrs = append(attrs, "code", string(tokErr.Code))
		}
		logger.Error(os.Args[1]+" failed", attrs...)
		os.Exit(1)
	}
}

func runIssue(logger *slog.Logger, args []string) error {
	fset := flag.NewFlagSet("issue", flag.ExitOnError)
	envFile := fset.String("env", defaultEnvPath(), "Optional path to .env file")
	email := fset.String("email", "", "User email written to user_email")
	role := fset.String("role", "", "User role written to user_role")
	_ = fset.Parse(args)

	if *email == "" || *role == "" {
		fset.Usage()
		return errors.New("email and role are required")
	}

	cfg, err := loadConfig(logger, *envFile)
	if err != nil {
		return err
	}
	issuer, err := jwtx.NewIssuer(cfg)
	if err != nil {
		return fmt.Errorf("create issuer: %w", err)
	}
	token, err := issuer.Issue(*email, *role)
	if err != nil {
		return err
	}
	logger.Info("issued token", "email", *email, "role", *role, "ttl", jwtx.TokenTTL)
	fmt.Println(token)
	return nil
}

func runVerify(logger *slog.Logger, args []string) error {
	fset := flag.NewFlagSet("verify", flag.ExitOnError)
	envFile := fset.String("env", defaultEnvPath(), "Optional path to .env file")
	token := fset.String("token", os.Getenv("KOOMPI_TOKEN"), "Token to verify (env KOOMPI_TOKEN)")
	_ = fset.Parse(args)

	cfg, err := loadConfig(logger, *envFile)
	if err != nil {
		return err
	}
	if *token == "" {
		// A token only present in the .env file is picked up after loading it.
		*token = os.Getenv("KOOMPI_TOKEN")
	}
	if *token == "" {
		fset.Usage()
		return errors.New("token is required")
	}

	verifier, err := jwtx.NewVerifier(cfg)
	if err != nil {
		return fmt.Errorf("create verifier: %w", err)
	}
	parsed, err := verifier.Decode(*token)
	if err != nil {
		return err
	}
	printToken(parsed)
	return nil
}

func loadConfig(logger *slog.Logger, envFile string) (jwtx.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("load env file", "path", envFile, "error", err)
		}
	}
	return jwtx.ConfigFromEnv()
}

func defaultEnvPath() string {
	if path := os.Getenv("KOOMPI_TOKEN_ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}

func printToken(token *jwtx.Token) {
	fmt.Println("== koompiPlay token verified ==")
	fmt.Printf("algorithm    : %s\n", token.Header.Algorithm)
	fmt.Printf("audience     : %s\n", token.Claims.Audience)
	fmt.Printf("user_email   : %s\n", token.Claims.UserEmail)
	fmt.Printf("user_role    : %s\n", token.Claims.UserRole)
	fmt.Printf("expires_at   : %s\n", token.Claims.ExpiresAt().Format(time.RFC3339))
}
