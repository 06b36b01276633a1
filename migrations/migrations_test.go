package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestPermissionCatalogCoversRouteModules(t *testing.T) {
	body, err := fs.ReadFile(files, "000005_permissions.up.sql")
	require.NoError(t, err)

	for _, perm := range []string{
		"('payroll', 'process'",
		"('payroll', 'pay'",
		"('salary_slip', 'read'",
		"('leave', 'approve'",
		"('recruitment', 'hire'",
		"('salary_structure', 'create'",
		"('approval_workflow', 'update'",
	} {
		assert.Contains(t, string(body), perm)
	}
}
