package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opshell/internal/plugins"
)

func TestDefaultKeyFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "UsersCategory", want: "users"},
		{in: "Cache", want: "cache"},
		{in: "CategoryTools", want: "categorytools"},
		{in: "Category", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultKeyFunc(tt.in))
		})
	}
}

func TestTypeNameFromFile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "UsersCategory", want: "UsersCategory"},
		{in: "users_category", want: "UsersCategory"},
		{in: "cache-tools_category", want: "CacheToolsCategory"},
		{in: "__odd__", want: "Odd"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeNameFromFile(tt.in))
		})
	}
}

func TestDirectorySource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users_category.go", "AdminCategory.go", "users_category_test.go", "README.md", ".hidden.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package categories\n"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.go"), 0o755))

	got, err := DirectorySource{Path: dir}.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"AdminCategory", "UsersCategory"}, got)
}

func TestDirectorySource_MissingDirectoryIsSilent(t *testing.T) {
	got, err := DirectorySource{Path: filepath.Join(t.TempDir(), "absent")}.Names()
	assert.NoError(t, err)
	assert.Empty(t, got)

	got, err = DirectorySource{}.Names()
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDirectorySource_CustomExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache.plugin"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.go"), nil, 0o600))

	got, err := DirectorySource{Path: dir, Extensions: []string{".plugin"}}.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"Cache"}, got)
}

func TestManifestSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	manifest := "categories:\n  - UsersCategory\n  - AdminCategory\nchecks:\n  - DiskCheck\n"
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	cats, err := ManifestSource{Path: path, Section: SectionCategories}.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"UsersCategory", "AdminCategory"}, cats)

	checks, err := ManifestSource{Path: path, Section: SectionChecks}.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"DiskCheck"}, checks)

	_, err = ManifestSource{Path: path, Section: "scripts"}.Names()
	assert.Error(t, err)
}

func TestManifestSource_Errors(t *testing.T) {
	missing, err := ManifestSource{Path: filepath.Join(t.TempDir(), "none.yaml"), Section: SectionCategories}.Names()
	assert.NoError(t, err)
	assert.Empty(t, missing)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("categories: [unterminated"), 0o600))
	_, err = ManifestSource{Path: bad, Section: SectionCategories}.Names()
	assert.Error(t, err)
}

func TestCategoryRegistry_BrokenManifestLeavesRegistryEmpty(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("categories: [unterminated"), 0o600))

	r := NewCategoryRegistry(CategoryConfig{
		Plugins:   newPluginRegistry(t, nil),
		Namespace: testNamespace,
		Source:    ManifestSource{Path: bad, Section: SectionCategories},
	})
	assert.Empty(t, r.All())
}

func TestRegistrySource(t *testing.T) {
	reg := plugins.NewRegistry()
	reg.MustRegister("ns", "B", func() any { return 1 })
	reg.MustRegister("other", "X", func() any { return 1 })
	reg.MustRegister("ns", "A", func() any { return 1 })

	got, err := RegistrySource{Plugins: reg, Namespace: "ns"}.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, got)

	got, err = RegistrySource{}.Names()
	require.NoError(t, err)
	assert.Empty(t, got)
}
