package notify

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"success", KindSuccess, false},
		{"error", KindError, false},
		{"warning", KindWarning, false},
		{"warn", KindWarning, false},
		{"info", KindInfo, false},
		{"", "", true},
		{"INFO", "", true},
		{"debug", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKinds_are_all_valid(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 4)
	for _, k := range kinds {
		assert.True(t, k.IsValid(), string(k))
	}
}

func TestRequest_Validate_collects_every_field(t *testing.T) {
	err := Request{Kind: "nope", Title: "", AutoDismiss: -1}.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestRequest_Validate_ok(t *testing.T) {
	err := Request{Kind: KindWarning, Title: "Disk almost full", AutoDismiss: time.Second}.Validate()
	assert.NoError(t, err)
}

func TestSequence(t *testing.T) {
	seq := NewSequence("n")
	assert.Equal(t, ID("n-1"), seq.NewID())
	assert.Equal(t, ID("n-2"), seq.NewID())
}

func TestUUIDs(t *testing.T) {
	gen := UUIDs()
	a, b := gen.NewID(), gen.NewID()
	assert.Len(t, string(a), 36)
	assert.NotEqual(t, a, b)
}
