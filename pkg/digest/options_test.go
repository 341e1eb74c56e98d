package digest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pepdigest/pkg/digest"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := digest.DefaultOptions()
	assert.Equal(t, 6, opts.MinLen)
	assert.Equal(t, 50, opts.MaxLen)
	assert.Equal(t, 0, opts.Miscleavages)
	assert.True(t, opts.MethionineCleavage)
	assert.Equal(t, digest.ModeFull, opts.Mode)
	assert.Equal(t, "KR", opts.Rules.Pre.String())
	assert.Equal(t, "P", opts.Rules.NotPost.String())
	assert.True(t, opts.Rules.Post.Empty())
	require.NoError(t, opts.Validate())
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*digest.Options)
		wantErr string
	}{
		{name: "zero min length", mutate: func(o *digest.Options) { o.MinLen = 0 }, wantErr: "min length"},
		{name: "max below min", mutate: func(o *digest.Options) { o.MaxLen = 3 }, wantErr: "max length"},
		{name: "negative miscleavages", mutate: func(o *digest.Options) { o.Miscleavages = -1 }, wantErr: "miscleavages"},
		{name: "unknown mode", mutate: func(o *digest.Options) { o.Mode = digest.Mode(7) }, wantErr: "mode"},
		{name: "min equals max", mutate: func(o *digest.Options) { o.MaxLen = o.MinLen }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := digest.DefaultOptions()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, digest.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    digest.Mode
		wantErr bool
	}{
		{in: "full", want: digest.ModeFull},
		{in: "", want: digest.ModeFull},
		{in: "Semi", want: digest.ModeSemi},
		{in: " none ", want: digest.ModeNone},
		{in: "partial", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := digest.ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, digest.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Text(t *testing.T) {
	t.Parallel()

	for _, mode := range []digest.Mode{digest.ModeFull, digest.ModeSemi, digest.ModeNone} {
		text, err := mode.MarshalText()
		require.NoError(t, err)

		var back digest.Mode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, mode, back)
	}

	_, err := digest.Mode(9).MarshalText()
	require.ErrorIs(t, err, digest.ErrInvalidConfiguration)
	assert.Equal(t, "Mode(9)", digest.Mode(9).String())
}
