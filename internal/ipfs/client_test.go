package ipfs_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artzone/artzone-indexer/internal/ipfs"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/mocks"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestCatFirstGatewayWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	client := ipfs.NewGatewayClient([]string{
		"https://a.example/ipfs/",
		"https://b.example/ipfs/",
	}, httpClient)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://a.example/ipfs/"+testCID).
		Return([]byte(`{"name":"x"}`), nil)

	data, err := client.Cat(context.Background(), testCID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"x"}`), data)
}

func TestCatFallsThroughToNextGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	client := ipfs.NewGatewayClient([]string{
		"https://a.example/ipfs/",
		"https://b.example/ipfs/",
	}, httpClient)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://a.example/ipfs/"+testCID).
		Return(nil, errors.New("504 gateway timeout"))
	httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://b.example/ipfs/"+testCID).
		Return([]byte(`{}`), nil)

	data, err := client.Cat(context.Background(), testCID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)
}

func TestCatAllGatewaysFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	client := ipfs.NewGatewayClient([]string{
		"https://a.example/ipfs/",
		"https://b.example/ipfs/",
	}, httpClient)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://a.example/ipfs/"+testCID).
		Return(nil, errors.New("504 gateway timeout"))
	httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://b.example/ipfs/"+testCID).
		Return(nil, errors.New("connection refused"))

	_, err := client.Cat(context.Background(), testCID)
	assert.ErrorContains(t, err, "from all gateways")
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewGatewayClientDefaultsGateways(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	client := ipfs.NewGatewayClient(nil, httpClient)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), ipfs.DefaultGateways[0]+testCID).
		Return([]byte(`{}`), nil)

	_, err := client.Cat(context.Background(), testCID)
	assert.NoError(t, err)
}
