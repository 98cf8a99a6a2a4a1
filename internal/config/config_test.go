package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "blog.db", conf.DBPath)
	assert.Equal(t, "web/templates", conf.TemplateDir)
	assert.Equal(t, "smtp.gmail.com", conf.SMTPHost)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/other.db")

	conf, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "9090", conf.Port)
	assert.Equal(t, "/tmp/other.db", conf.DBPath)
}

func TestEnvFile(t *testing.T) {
	// register a restore for the vars the dotenv file will clobber
	t.Setenv("PORT", os.Getenv("PORT"))
	t.Setenv("CONTACT_RECIPIENT", os.Getenv("CONTACT_RECIPIENT"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nCONTACT_RECIPIENT=owner@example.com\n"), 0644))

	conf, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", conf.Port)
	assert.Equal(t, "owner@example.com", conf.Recipient)
}

func TestMissingEnvFileIsFine(t *testing.T) {
	conf, err := New(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", conf.Port)
}
