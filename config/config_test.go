package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":              "9000",
		"BAD_INT":           "nine",
		"FLAG":              "true",
		"ORIGINS":           " https://a.example , ,https://b.example",
		"TIMEOUT":           "15",
		"BLANK":             "  ",
		"ADMIN_CREDENTIALS": "v:$2a$10$abc,haressh:$2a$10$def, broken ,:nouser",
	}

	assert.Equal(t, "9000", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
	assert.Equal(t, "local", GetString(c, "BLANK", "local"))
	assert.Equal(t, 9000, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.True(t, GetBool(c, "FLAG", false))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.Equal(t, 15*time.Second, GetSeconds(c, "TIMEOUT", 180))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetStrings(c, "ORIGINS"))
	assert.Nil(t, GetStrings(c, "MISSING"))
	assert.Equal(t, map[string]string{"v": "$2a$10$abc", "haressh": "$2a$10$def"}, GetPairs(c, "ADMIN_CREDENTIALS"))
}

func TestMergeKeepsExistingValues(t *testing.T) {
	c := Merge(map[string]string{"JWT_SECRET": "env"}, map[string]string{"JWT_SECRET": "ssm", "ADMIN_CREDENTIALS": "v:x"})

	assert.Equal(t, "env", c["JWT_SECRET"])
	assert.Equal(t, "v:x", c["ADMIN_CREDENTIALS"])

	c = Merge(map[string]string{"S3_BUCKET": ""}, map[string]string{"S3_BUCKET": "netrik-uploads"})
	assert.Equal(t, "netrik-uploads", c["S3_BUCKET"])
}

type fakeLister struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeLister) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[f.calls]}
	f.calls++
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSMParametersWalksPages(t *testing.T) {
	lister := &fakeLister{pages: [][]types.Parameter{
		{{Name: aws.String("/netrik/prod/JWT_SECRET"), Value: aws.String("s3cr3t")}},
		{{Name: aws.String("/netrik/prod/admins/ADMIN_CREDENTIALS"), Value: aws.String("v:hash")}},
	}}

	values, err := LoadSSMParameters(context.Background(), lister, "/netrik/prod")
	require.NoError(t, err)

	assert.Equal(t, 2, lister.calls)
	assert.Equal(t, map[string]string{"JWT_SECRET": "s3cr3t", "ADMIN_CREDENTIALS": "v:hash"}, values)
}

func TestLoadSSMParametersPropagatesErrors(t *testing.T) {
	_, err := LoadSSMParameters(context.Background(), &fakeLister{err: errors.New("denied")}, "/netrik")
	assert.ErrorContains(t, err, "denied")
}
