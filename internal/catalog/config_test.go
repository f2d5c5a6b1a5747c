package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigPhotoalbum(t *testing.T) {
	raw := json.RawMessage(`{"size":"medium","coverType":"hard","pages":30,"paperType":"glossy"}`)
	cfg, err := ParseConfig(TypePhotoalbum, raw)
	require.NoError(t, err)

	album, ok := cfg.(PhotoalbumConfig)
	require.True(t, ok)
	require.Equal(t, "medium", album.Size)
	require.Equal(t, 30, album.Pages)
}

func TestParseConfigPrintsAlias(t *testing.T) {
	raw := json.RawMessage(`{"size":"10x15","quantity":5,"paperType":"matte","border":false}`)

	asPhotos, err := ParseConfig(TypePhotos, raw)
	require.NoError(t, err)
	asPrints, err := ParseConfig(TypePrints, raw)
	require.NoError(t, err)
	require.Equal(t, asPhotos, asPrints)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name        string
		productType string
		raw         string
	}{
		{"unknown_type", "poster", `{}`},
		{"bad_album_size", TypePhotoalbum, `{"size":"huge","coverType":"soft","pages":20,"paperType":"matte"}`},
		{"zero_pages", TypePhotoalbum, `{"size":"small","coverType":"soft","pages":0,"paperType":"matte"}`},
		{"bad_photo_size", TypePhotos, `{"size":"30x40","quantity":1,"paperType":"matte"}`},
		{"zero_quantity", TypePhotos, `{"size":"10x15","quantity":0,"paperType":"matte"}`},
		{"bad_months", TypeCalendar, `{"type":"wall","size":"A4","months":9,"binding":"spiral"}`},
		{"bad_binding", TypeCalendar, `{"type":"desk","size":"A4","months":6,"binding":"stapled"}`},
		{"not_json", TypeCalendar, `"wall"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.productType, json.RawMessage(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestValidProductType(t *testing.T) {
	for _, name := range []string{TypePhotoalbum, TypePhotos, TypePrints, TypeCalendar} {
		require.True(t, ValidProductType(name))
	}
	require.False(t, ValidProductType("mug"))
	require.False(t, ValidProductType(""))
}
