package catalog

import (
	"context"
	"testing"

	"nexus/internal/errors"
	"nexus/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.b.txt", "txt"},
		{"README", "file"},
		{".gitignore", "gitignore"},
		{"Main.PY", "PY"},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.name))
		})
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("Main.PY")
	assert.Equal(t, "Main.PY", e.Name)
	assert.Equal(t, "PY", e.Extension)
	assert.Equal(t, "🐍", e.Icon, "icon lookup is case-insensitive")
	assert.True(t, e.IsCode)

	e = NewEntry("notes.txt")
	assert.Equal(t, "📄", e.Icon)
	assert.False(t, e.IsCode)

	e = NewEntry("archive.xyz")
	assert.Equal(t, DefaultIcon, e.Icon)
	assert.False(t, e.IsCode)

	e = NewEntry("style.css")
	assert.Equal(t, "🎨", e.Icon)
	assert.False(t, e.IsCode, "css has an icon but is not executable")
}

func TestCodeExtensions(t *testing.T) {
	exts := CodeExtensions()
	assert.Len(t, exts, 24)
	assert.Contains(t, exts, "go")
	assert.Contains(t, exts, "tsx")
	assert.NotContains(t, exts, "h")
}

func TestLoad(t *testing.T) {
	svc := testutils.NewFakeService()
	svc.Files = []string{"b.go", "a.txt", "c.rs"}

	files, err := Load(context.Background(), svc)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "b.go", files[0].Name, "service order is kept")
	assert.Equal(t, "rs", files[2].Extension)
	assert.Equal(t, 1, svc.Calls("files"))

	svc.Fail("files", errors.NewRequestError("boom", "/api/files", 500, errors.Transport, nil))
	files, err = Load(context.Background(), svc)
	assert.Error(t, err)
	assert.Nil(t, files)
	assert.True(t, errors.IsTransport(err))
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(FromNames([]string{"a.go", "b.py", "c.txt", "d.md", "e.sh", "f.c", "g"}))
	assert.Equal(t, Stats{Total: 7, Code: 4, Recent: 5}, s)

	s = ComputeStats(FromNames([]string{"a.txt"}))
	assert.Equal(t, Stats{Total: 1, Code: 0, Recent: 1}, s)

	assert.Equal(t, Stats{}, ComputeStats(nil))
}
