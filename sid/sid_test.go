package sid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Regression vectors: exact djb2 values for a small fixed corpus.
func TestHash_Vectors(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"", 5381}, // empty range yields the seed
		{"a", 177670},
		{"ab", 5863208},
		{"abc", 193485963},
		{"player_jump", 0x364c060d},
		{"main_menu", 0xaa394b1e},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, Hash([]byte(tt.input)))
		})
	}
}

func TestHash_SeedConstant(t *testing.T) {
	assert.Equal(t, Seed, Hash(nil))
	assert.Equal(t, Seed, Hash([]byte{}))
}

// 5381*33 + 'a', the first accumulator step spelled out.
func TestHash_SingleByte(t *testing.T) {
	assert.Equal(t, uint32(5381*33+'a'), Hash([]byte("a")))
}

func TestHashString_MatchesHash(t *testing.T) {
	for _, s := range []string{"", "a", "player_jump", "with spaces", "esc\\ape"} {
		assert.Equal(t, Hash([]byte(s)), HashString(s), "HashString(%q)", s)
	}
}

// Wraparound is defined behavior: longer inputs must overflow 32 bits
// deterministically rather than widen.
func TestHash_Wraparound(t *testing.T) {
	assert.Equal(t, uint32(0x7c93cc66), Hash([]byte(`a\"b`)))
}
