package provider_test

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-sls-go/internal/ifaces"
	"github.com/lex00/wetwire-sls-go/internal/platform"
	"github.com/lex00/wetwire-sls-go/internal/provider"
)

func TestAccountID_CachesResult(t *testing.T) {
	mockSTS := ifaces.NewMockSTS(t)
	mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{Account: aws.String("ACCOUNT_ID")}, nil).
		Once()

	sut := provider.NewWithClient("dev", "us-east-1", mockSTS)

	for range 2 {
		account, err := sut.AccountID(t.Context())
		require.NoError(t, err)
		require.Equal(t, "ACCOUNT_ID", account)
	}
	require.Equal(t, "dev", sut.Stage())
	require.Equal(t, "us-east-1", sut.Region())
}

func TestAccountID_APICallFails(t *testing.T) {
	mockSTS := ifaces.NewMockSTS(t)
	mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(nil, errors.New("bacon"))

	_, err := provider.NewWithClient("dev", "us-east-1", mockSTS).AccountID(t.Context())

	require.Error(t, err)
	require.Contains(t, err.Error(), "could not get caller identity: bacon")
}

func TestAccountID_NoAccount(t *testing.T) {
	mockSTS := ifaces.NewMockSTS(t)
	mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{}, nil)

	_, err := provider.NewWithClient("dev", "us-east-1", mockSTS).AccountID(t.Context())

	require.EqualError(t, err, "caller identity has no account")
}

func TestNew_StaticCredentials(t *testing.T) {
	sut, err := provider.New(t.Context(), provider.Options{
		Stage:  "prod",
		Region: "eu-west-1",
		Credentials: &platform.AWSCredentials{
			AccessKeyID:     "AKID",
			SecretAccessKey: "SECRET",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sut.STS)
	require.Equal(t, "eu-west-1", sut.Region())
}
