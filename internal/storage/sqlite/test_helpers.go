package sqlite

import (
	"os"
	"path/filepath"
)

// findMigrationsDir locates the repository's migrations directory from a test
// working directory. It searches upward from the current directory; tests
// panic with a clear message when the repo layout cannot be found.
func findMigrationsDir() string {
	candidates := []string{
		"migrations",
		filepath.Join("..", "..", "..", "migrations"), // from internal/storage/sqlite
		filepath.Join("..", "..", "migrations"),
		filepath.Join("..", "migrations"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	panic("cannot find migrations directory - run tests from inside the repository")
}
