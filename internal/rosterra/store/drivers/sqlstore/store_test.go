package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single", "SELECT * FROM accounts WHERE id = ?", "SELECT * FROM accounts WHERE id = $1"},
		{"several", "UPDATE a SET x = ?, y = ? WHERE id = ?", "UPDATE a SET x = $1, y = $2 WHERE id = $3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RebindDollar(tt.in))
		})
	}
}
