package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	p, err := CleanPath("/products/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "products/a.jpg", p)

	for _, bad := range []string{"", "../etc/passwd", "products/../../x", "a//b", `a\b`} {
		_, err := CleanPath(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "http://cdn.test/storage/")

	require.NoError(t, d.Put(ctx, "products/x.png", strings.NewReader("png-bytes"), "image/png"))

	ok, err := d.Exists(ctx, "products/x.png")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := d.Get(ctx, "products/x.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "png-bytes", string(body))

	assert.Equal(t, "http://cdn.test/storage/products/x.png", d.URL("products/x.png"))

	require.NoError(t, d.Delete(ctx, "products/x.png"))
	require.NoError(t, d.Delete(ctx, "products/x.png"))
	ok, err = d.Exists(ctx, "products/x.png")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, d.Put(ctx, "../escape", strings.NewReader(""), ""), ErrInvalidPath)
}

func TestManagerDefault(t *testing.T) {
	RegisterDisk("mem-test", NewLocalDisk(t.TempDir(), "http://x"))
	require.NoError(t, SetDefault("mem-test"))
	assert.NotNil(t, Default())

	assert.Error(t, SetDefault("nope"))
	_, err := Use("nope")
	assert.Error(t, err)
}
