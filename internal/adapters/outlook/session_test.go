package outlook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemSession_Accessors(t *testing.T) {
	session := NewItemSession("AAA=", "user@contoso.com")
	assert.Equal(t, "AAA=", session.ItemID())
	assert.Equal(t, "user@contoso.com", session.UserEmailAddress())
}

func TestConvertToRestID(t *testing.T) {
	session := NewItemSession("", "")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain id unchanged", "AAA=", "AAA="},
		{"plus becomes dash", "AAMkAG+IAAA=", "AAMkAG-IAAA="},
		{"slash becomes underscore", "AAMkAG/IAAA=", "AAMkAG_IAAA="},
		{"both substitutions", "a+b/c+d/", "a-b_c-d_"},
		{"empty id", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.ConvertToRestID(tt.in))
		})
	}
}
