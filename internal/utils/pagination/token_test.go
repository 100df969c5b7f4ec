package pagination_test

import (
	"testing"
	"time"

	"github.com/finledger/fin_titles_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 10, 14, 30, 12, 123456789, time.UTC)

	token := pagination.EncodeToken(cursor, created)
	require.NotEmpty(t, token)

	gotCursor, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.Equal(gotCursor))
	assert.True(t, created.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // decodes but has no separator
	assert.Error(t, err)
}
