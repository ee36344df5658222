package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSettings(t *testing.T) {
	defaults := GuildSettings{Volume: ScaleVolume(80), Autoplay: AutoplayPartial}

	tests := []struct {
		name string
		data map[string]string
		want GuildSettings
	}{
		{
			name: "empty keeps caller defaults",
			data: map[string]string{},
			want: defaults,
		},
		{
			name: "saved fields override",
			data: map[string]string{"volume": "15", "autoplay": "off"},
			want: GuildSettings{Volume: 15, Autoplay: AutoplayOff},
		},
		{
			name: "invalid volume keeps default",
			data: map[string]string{"volume": "not-a-number"},
			want: defaults,
		},
		{
			name: "out of range volume keeps default",
			data: map[string]string{"volume": "999"},
			want: defaults,
		},
		{
			name: "unknown autoplay mode keeps default",
			data: map[string]string{"autoplay": "sideways"},
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeSettings(defaults, tt.data))
		})
	}
}
