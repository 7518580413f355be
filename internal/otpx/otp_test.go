package otpx

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestDescribe_BareSecret(t *testing.T) {
	want, err := totp.GenerateCode("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)

	d, err := Describe("jbsw y3dp ehpk 3pxp", at)
	require.NoError(t, err)

	assert.Equal(t, "JBSWY3DPEHPK3PXP", d.Secret)
	assert.Equal(t, want, d.Code)
	assert.Equal(t, uint(30), d.Period)
	assert.Equal(t, 6, d.Digits)
	assert.Empty(t, d.Issuer)
}

func TestDescribe_URI(t *testing.T) {
	uri := "otpauth://totp/ACME:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=ACME&digits=8&period=60"

	d, err := Describe(uri, at)
	require.NoError(t, err)

	assert.Equal(t, "JBSWY3DPEHPK3PXP", d.Secret)
	assert.Equal(t, "ACME", d.Issuer)
	assert.Equal(t, "alice@example.com", d.Account)
	assert.Equal(t, uint(60), d.Period)
	assert.Equal(t, 8, d.Digits)
	assert.Len(t, d.Code, 8)
}

func TestDescribe_InvalidSecret(t *testing.T) {
	_, err := Describe("not*base32!", at)
	require.Error(t, err)
}

func TestDescribe_CodeChangesWithPeriod(t *testing.T) {
	a, err := Describe("JBSWY3DPEHPK3PXP", at)
	require.NoError(t, err)
	b, err := Describe("JBSWY3DPEHPK3PXP", at.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, a.Code, b.Code, "same 30s window")
}
