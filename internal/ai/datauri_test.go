package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

func TestParseImageInput(t *testing.T) {
	cases := map[string]struct {
		in       string
		wantMIME string
		wantData []byte
	}{
		"data uri": {
			in:       "data:image/png;base64,AQID",
			wantMIME: "image/png",
			wantData: []byte{1, 2, 3},
		},
		"data uri without mime": {
			in:       "data:;base64,AQID",
			wantMIME: "image/jpeg",
			wantData: []byte{1, 2, 3},
		},
		"bare base64": {
			in:       "AQID",
			wantMIME: "image/jpeg",
			wantData: []byte{1, 2, 3},
		},
		"unpadded base64": {
			in:       "AQIDBA",
			wantMIME: "image/jpeg",
			wantData: []byte{1, 2, 3, 4},
		},
		"header comma payload": {
			in:       "whatever,AQID",
			wantMIME: "image/jpeg",
			wantData: []byte{1, 2, 3},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			img, err := ParseImageInput(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMIME, img.MIMEType)
			assert.Equal(t, tc.wantData, img.Data)
		})
	}
}

func TestParseImageInput_Undecodable(t *testing.T) {
	_, err := ParseImageInput("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEncodeDataURI_RoundTrip(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte{1, 2, 3})
	assert.Equal(t, "data:image/png;base64,AQID", uri)

	img, err := ParseImageInput(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, img.Data)
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain object":  {`{"a":1}`, `{"a":1}`},
		"plain array":   {`[1,2]`, `[1,2]`},
		"json fence":    {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":    {"```\n[1,2]\n```", `[1,2]`},
		"chatter":       {`Here is your JSON: {"a":1} enjoy!`, `{"a":1}`},
		"array first":   {`[{"a":1}]`, `[{"a":1}]`},
		"no json":       {"sorry, I cannot", ""},
		"broken json":   {`{"a":`, ""},
		"empty":         {"", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}
