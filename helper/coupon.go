package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"ticketflix/constants"
	"ticketflix/model"

	"gorm.io/gorm"
)

// Redemption tokens are hex(sha256(code)) immediately followed by the
// coupon id. The digest length is fixed, so the split is deterministic.
// This format is embedded in printed QR codes and must stay stable.
const DigestHexLen = sha256.Size * 2

const codeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomCodeSuffix(length int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeCharset[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUniqueCouponCode mints a coupon code and retries while an
// unsold coupon already holds it. Reuse of a sold coupon's code is
// allowed: redemption tokens are scoped to the coupon id.
func GenerateUniqueCouponCode(tx *gorm.DB) (string, error) {
	for i := 0; i < constants.CouponCodeRetry; i++ {
		suffix, err := randomCodeSuffix(constants.CouponCodeLength)
		if err != nil {
			return "", err
		}
		code := constants.CouponCodePrefix + suffix

		var count int64
		if err := tx.Model(&model.Coupon{}).
			Where("code = ? AND sale_timestamp IS NULL", code).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not mint a unique coupon code")
}

func HashCouponCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func RedemptionToken(code string, id uint) string {
	return HashCouponCode(code) + strconv.FormatUint(uint64(id), 10)
}

func RedemptionURL(baseUrl, code string, id uint) string {
	return fmt.Sprintf("%s/view-coupon/%s", baseUrl, url.PathEscape(RedemptionToken(code, id)))
}

// SplitRedemptionToken splits a token at the fixed digest boundary.
func SplitRedemptionToken(token string) (digestHex string, id uint, err error) {
	if len(token) <= DigestHexLen {
		return "", 0, errors.New("token too short")
	}
	digestHex = token[:DigestHexLen]
	if _, err := hex.DecodeString(digestHex); err != nil {
		return "", 0, errors.New("token digest is not hex")
	}
	id64, err := strconv.ParseUint(token[DigestHexLen:], 10, 32)
	if err != nil {
		return "", 0, errors.New("token id is not numeric")
	}
	return digestHex, uint(id64), nil
}
