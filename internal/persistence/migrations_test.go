package persistence

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationsAreEmbeddedAndOrdered(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names, "the schema migrations must ship inside the binary")

	assert.True(t, sort.StringsAreSorted(names), "migrations apply in filename order")
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".sql"), "unexpected migration file %s", name)

		content, err := migrationFiles.ReadFile("migrations/" + name)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	}
}

func TestRunMigrationsWithoutPoolIsNoop(t *testing.T) {
	err := RunMigrations(t.Context(), nil, zap.NewNop())
	assert.NoError(t, err)
}
