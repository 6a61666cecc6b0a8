package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLockTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "typed lock timeout",
			err:  NewLockTimeoutError("counter 1"),
			want: true,
		},
		{
			name: "other typed error",
			err:  NewNotFoundError("ticket not found"),
			want: false,
		},
		{
			name: "mysql lock wait timeout",
			err:  stderrors.New("Error 1205 (HY000): Lock wait timeout exceeded; try restarting transaction"),
			want: true,
		},
		{
			name: "mysql deadlock victim",
			err:  stderrors.New("Error 1213 (40001): Deadlock found when trying to get lock; try restarting transaction"),
			want: true,
		},
		{
			name: "postgres lock timeout",
			err:  stderrors.New("ERROR: canceling statement due to lock timeout (SQLSTATE 55P03)"),
			want: true,
		},
		{
			name: "postgres deadlock",
			err:  stderrors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
			want: true,
		},
		{
			name: "unrelated driver error",
			err:  stderrors.New("Error 1062 (23000): Duplicate entry 'A001' for key 'idx_tickets_number'"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLockTimeout(tt.err))
		})
	}
}
