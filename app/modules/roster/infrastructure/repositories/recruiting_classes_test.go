package rosterdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecruitingClasses_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		input  RecruitingClasses
		joined string
		want   RecruitingClasses
	}{
		{
			name:   "two classes",
			input:  RecruitingClasses{"Bishop", "Elven Elder"},
			joined: "Bishop, Elven Elder",
			want:   RecruitingClasses{"Bishop", "Elven Elder"},
		},
		{
			name:   "entries are trimmed",
			input:  RecruitingClasses{"  Bishop ", "Warlord"},
			joined: "  Bishop , Warlord",
			want:   RecruitingClasses{"Bishop", "Warlord"},
		},
		{
			name:   "empty",
			input:  RecruitingClasses{},
			joined: "",
			want:   RecruitingClasses{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.joined, tt.input.String())
			assert.Equal(t, tt.want, ParseRecruitingClasses(tt.input.String()))
		})
	}
}

func TestParseRecruitingClasses_DropsEmptyEntries(t *testing.T) {
	assert.Equal(t, RecruitingClasses{"Bishop", "Warlord"}, ParseRecruitingClasses(" Bishop,, ,Warlord,"))
	assert.Equal(t, RecruitingClasses{}, ParseRecruitingClasses("   "))
}

func TestRecruitingClasses_Display(t *testing.T) {
	assert.Equal(t, NoCurrentNeeds, RecruitingClasses{}.Display())
	assert.Equal(t, NoCurrentNeeds, RecruitingClasses(nil).Display())
	assert.Equal(t, "Bishop, Warlord", RecruitingClasses{"Bishop", "Warlord"}.Display())
}

func TestRecruitingClasses_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		RC RecruitingClasses `json:"recruiting_classes"`
	}{RC: RecruitingClasses{"Bishop", "Elven Elder"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"recruiting_classes":"Bishop, Elven Elder"}`, string(b))

	var fromString, fromArray RecruitingClasses
	require.NoError(t, json.Unmarshal([]byte(`"Bishop , Elven Elder"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`[" Bishop", "", "Elven Elder"]`), &fromArray))
	assert.Equal(t, RecruitingClasses{"Bishop", "Elven Elder"}, fromString)
	assert.Equal(t, fromString, fromArray)

	assert.Error(t, json.Unmarshal([]byte(`42`), &fromString))
}

func TestRecruitingClasses_Scan(t *testing.T) {
	var rc RecruitingClasses
	require.NoError(t, rc.Scan([]byte("Bishop, Warlord")))
	assert.Equal(t, RecruitingClasses{"Bishop", "Warlord"}, rc)

	require.NoError(t, rc.Scan(nil))
	assert.Equal(t, RecruitingClasses{}, rc)

	assert.Error(t, rc.Scan(42))

	v, err := RecruitingClasses{"Bishop"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "Bishop", v)
}
