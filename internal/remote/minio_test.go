package remote

import (
	"context"
	"testing"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContentID_StableAndDistinct(t *testing.T) {
	a := HashContentID([]byte(`{"id":"m1"}`))
	b := HashContentID([]byte(`{"id":"m1"}`))
	c := HashContentID([]byte(`{"id":"m2"}`))

	assert.Equal(t, a, b, "same content, same id")
	assert.NotEqual(t, a, c)
	assert.Len(t, string(a), 64)
}

func TestMinioContentStore_TooLargeBeforeNetwork(t *testing.T) {
	s, err := NewMinioContentStore(MinioOptions{
		Endpoint:        "localhost:9000",
		AccessKey:       "k",
		SecretKey:       "s",
		Bucket:          "records",
		MaxPayloadBytes: 8,
	}, logging.Nop())
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), []byte("way past the limit"))
	require.ErrorIs(t, err, common.ErrTooLarge)
}

func TestNewMinioContentStore_BadEndpoint(t *testing.T) {
	_, err := NewMinioContentStore(MinioOptions{Endpoint: "http://bad endpoint"}, logging.Nop())
	require.Error(t, err)
}
