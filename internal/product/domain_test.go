package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnitTypeForName(t *testing.T) {
	cases := []struct {
		name string
		want UnitType
	}{
		{"ARROZ 5KG", UnitTypeWeight},
		{"presunto 1kg", UnitTypeWeight},
		{"LEITE INTEGRAL 1L", UnitTypeUnit},
		{"", UnitTypeUnit},
		{"PAO DE FORMA", UnitTypeUnit},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, UnitTypeForName(tc.name), "name %q", tc.name)
	}
}

func TestLifecycle(t *testing.T) {
	now := time.Now()

	require.Equal(t, LifecycleActive, Product{}.Lifecycle())
	require.Equal(t, LifecycleDeleted, Product{DeletedAt: &now}.Lifecycle())

	restored := Product{RestoredAt: &now}
	require.Equal(t, LifecycleActive, restored.Lifecycle())
}

func TestCodePattern(t *testing.T) {
	require.True(t, CodePattern.MatchString("7890000000001"))
	require.False(t, CodePattern.MatchString("789000000001"))
	require.False(t, CodePattern.MatchString("78900000000012"))
	require.False(t, CodePattern.MatchString("78900000000a1"))
}
