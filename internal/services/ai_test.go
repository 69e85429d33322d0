package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

func TestParseTaskDrafts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "bare array",
			content: `[{"name":"Set up CI","priority":"high","estimated_time":60}]`,
			want:    1,
		},
		{
			name:    "fenced",
			content: "```json\n[{\"name\":\"a\"},{\"name\":\"b\"}]\n```",
			want:    2,
		},
		{
			name:    "empty",
			content: "[]",
			want:    0,
		},
		{
			name:    "prose",
			content: "Sure! Here are your tasks.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := parseTaskDrafts(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, drafts, tt.want)
		})
	}
}

func TestParseTaskDrafts_Fields(t *testing.T) {
	drafts, err := parseTaskDrafts(`[{"name":"Set up CI","description":"GitHub Actions","priority":"high","estimated_time":60}]`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Set up CI", drafts[0].Name)
	assert.Equal(t, "GitHub Actions", drafts[0].Description)
	assert.Equal(t, models.PriorityHigh, drafts[0].Priority)
	assert.Equal(t, uint32(60), drafts[0].EstimatedTime)
}
