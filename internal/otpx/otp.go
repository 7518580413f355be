// Package otpx reads TOTP values stored in vault items. A value is either an
// otpauth:// URI or a bare base32 secret.
package otpx

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Details describes a TOTP value and the code it produced at a given time.
type Details struct {
	Secret  string
	Issuer  string
	Account string
	Period  uint
	Digits  int
	Code    string
}

// Describe parses value and generates the code valid at now.
func Describe(value string, now time.Time) (Details, error) {
	value = strings.TrimSpace(value)

	d := Details{Period: 30, Digits: 6}
	opts := totp.ValidateOpts{Period: 30, Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1}

	if strings.HasPrefix(strings.ToLower(value), "otpauth://") {
		key, err := otp.NewKeyFromURL(value)
		if err != nil {
			return Details{}, err
		}
		d.Secret = key.Secret()
		d.Issuer = key.Issuer()
		d.Account = key.AccountName()
		d.Period = uint(key.Period())
		d.Digits = key.Digits().Length()
		opts = totp.ValidateOpts{Period: d.Period, Digits: key.Digits(), Algorithm: key.Algorithm()}
	} else {
		d.Secret = strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	}

	code, err := totp.GenerateCodeCustom(d.Secret, now, opts)
	if err != nil {
		return Details{}, err
	}
	d.Code = code

	return d, nil
}
