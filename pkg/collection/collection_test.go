package collection

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID    int
	Group string
}

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, strconv.Itoa))

	empty := Map[int, string](nil, strconv.Itoa)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGroupBy(t *testing.T) {
	items := []item{{1, "a"}, {2, "b"}, {3, "a"}}
	got := GroupBy(items, func(i item) string { return i.Group })

	assert.Equal(t, []item{{1, "a"}, {3, "a"}}, got["a"])
	assert.Equal(t, []item{{2, "b"}}, got["b"])
	assert.Nil(t, got["c"])
}

func TestKeyBy(t *testing.T) {
	items := []item{{1, "a"}, {2, "b"}, {1, "c"}}
	got := KeyBy(items, func(i item) int { return i.ID })

	assert.Len(t, got, 2)
	assert.Equal(t, "c", got[1].Group)
}
