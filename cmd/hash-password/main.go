// Package main prints bcrypt digests for passwords given on the command line,
// in the format the users table stores. Useful for seeding accounts by hand.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-password [-cost N] password...")
		os.Exit(2)
	}

	if err := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// hashAll writes one "password<TAB>digest" line per password.
func hashAll(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		if len(password) > domain.MaxPasswordBytes {
			return fmt.Errorf("password %q exceeds %d bytes", password, domain.MaxPasswordBytes)
		}
		digest, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash %q: %w", password, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", password, digest); err != nil {
			return err
		}
	}
	return nil
}
