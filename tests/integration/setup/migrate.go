package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ferdian3456/virdanthread/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// RunMigration applies db/migrations, resolved from the integration folder.
func RunMigration(pgURL string, t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	// integration -> tests -> project root
	migrationDir := filepath.Join(wd, "..", "..", "db", "migrations")

	err = config.RunMigrationUp(pgURL, migrationDir, zap.NewNop())
	require.NoError(t, err, "migrations should apply cleanly")
}
