package data

import (
	"testing"
	"time"

	"github.com/jsonshare/jsonshare-backend/internal/share/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePOTableName(t *testing.T) {
	assert.Equal(t, "user_files", FilePO{}.TableName())
	assert.Equal(t, "json_files", ContentPO{}.TableName())
}

func TestFileConversionRoundTrip(t *testing.T) {
	r := &FileRepo{}

	now := time.Now().Truncate(time.Millisecond)
	file := &biz.UserFile{
		ID:        7,
		FileName:  "report.json",
		UserID:    "user-abc",
		ContentID: 3,
		ShareID:   "share-xyz",
		IsShared:  true,
		ExpiresAt: now.UnixMilli() + 1000,
		CreatedAt: now,
		UpdatedAt: now,
	}

	po := r.toPO(file)
	assert.Equal(t, file.ContentID, po.JSONID)
	assert.Equal(t, file.ExpiresAt, po.ExpiredAt)

	back := r.toFile(po)
	assert.Equal(t, file, back)
}

func TestJSONValueScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"bytes", []byte(`{"a":1}`), `{"a":1}`},
		{"string", `[1,2,3]`, `[1,2,3]`},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v JSONValue
			require.NoError(t, v.Scan(tt.input))
			assert.Equal(t, tt.want, string(v))
		})
	}

	var v JSONValue
	assert.Error(t, v.Scan(42))
}

func TestJSONValueValue(t *testing.T) {
	v := JSONValue(`{"x":true}`)
	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":true}`), got)

	empty := JSONValue(nil)
	got, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, got)
}
