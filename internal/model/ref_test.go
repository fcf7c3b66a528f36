package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Topic", KindTopic},
		{"nba_topics", KindNbaTopic},
		{"TennisTopic", KindTennisTopic},
		{"matches", KindMatch},
		{"Comment", KindComment},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseKind("User")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindCapabilities(t *testing.T) {
	assert.True(t, KindMatch.Commentable())
	assert.True(t, KindNbaTopic.Commentable())
	assert.False(t, KindComment.Commentable())
	assert.True(t, KindComment.Likeable())
	assert.False(t, Kind("User").Likeable())

	assert.True(t, KindTennisTopic.IsTopic())
	assert.False(t, KindMatch.IsTopic())
}

func TestSectionMapping(t *testing.T) {
	for _, s := range Sections() {
		k := s.Kind()
		back, ok := SectionOfKind(k)
		require.True(t, ok)
		assert.Equal(t, s, back)
		assert.Equal(t, k.Table(), s.Table())
	}
	assert.Equal(t, "nba_topics_count", SectionNBA.CounterColumn())

	s, ok := ParseSection("tennis")
	assert.True(t, ok)
	assert.Equal(t, SectionTennis, s)
	_, ok = ParseSection("cricket")
	assert.False(t, ok)
}

func TestTopicRefFollowsSection(t *testing.T) {
	topic := &Topic{ID: 7, Section: SectionNBA}
	assert.Equal(t, Ref{Kind: KindNbaTopic, ID: 7}, topic.Ref())
	assert.Equal(t, "NbaTopic:7", topic.Ref().String())
}

func TestParseRef(t *testing.T) {
	ref := NewRef(KindNbaTopic, 17)
	got, err := ParseRef(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref, got)

	_, err = ParseRef("Topic")
	assert.Error(t, err)
	_, err = ParseRef("Post:1")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = ParseRef("Topic:abc")
	assert.Error(t, err)
}
