// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "What Is The Return POLICY", "what is the return policy"},
		{"strips punctuation", "what's your return-policy?!", "whats your returnpolicy"},
		{"collapses whitespace", "  hello \t\n  world  ", "hello world"},
		{"empty input", "", ""},
		{"whitespace only", "   \t \n ", ""},
		{"symbols only", "?!@#$%^&*()", ""},
		{"numeric only", "911", "911"},
		{"mixed unicode", "Où est l'hôpital?", "où est lhôpital"},
		{"digits kept", "room 42, floor 3", "room 42 floor 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"What's your RETURN policy??",
		"  multi   space\ttabs\n",
		"",
		"already normalized text",
		"métro — ligne 4",
		"1234!@#$",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"book", "an", "appointment"}, Tokens("Book an appointment!"))
	assert.Nil(t, Tokens("???"))
	assert.Nil(t, Tokens(""))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("the the THE doctor")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "the")
	assert.Contains(t, set, "doctor")
	assert.Nil(t, TokenSet("  "))
}
