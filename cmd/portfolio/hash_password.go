package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UditanshuPandey/Portfolio-Website/internal/pkg/password"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print an argon2id hash for auth.admin_password_hash",
	Long: `Hash a password for use as auth.admin_password_hash, so the plain
admin password does not have to live in the config file.

The password is read from stdin when no argument is given.

Examples:
  portfolio hash-password 's3cret'
  echo 's3cret' | portfolio hash-password`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var plain string
	if len(args) == 1 {
		plain = args[0]
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			plain = strings.TrimRight(scanner.Text(), "\r\n")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if plain == "" {
		return errors.New("password must not be empty")
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
