package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMentionsScheduleChange(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  bool
	}{
		{"explicit schedule", "I'll schedule a study block for tonight.", true},
		{"reschedule", "Let's RESCHEDULE your sprint review.", true},
		{"block time", "I can block time tomorrow morning.", true},
		{"arrangement offer", "Let me arrange the study sessions for you.", true},
		{"plain answer", "The capital of France is Paris.", false},
		{"empty reply", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mentionsScheduleChange(tc.reply))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", truncateText("hello", 10))
	assert.Equal(t, "hel", truncateText("hello", 3))
	assert.Equal(t, "", truncateText("", 5))

	// Multi-byte runes must not be split mid-character
	assert.Equal(t, "日本", truncateText("日本語テキスト", 2))
}
