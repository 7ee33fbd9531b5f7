package authutils

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

func GetMD5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePassword returns a random initial password for a new account.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 12
	}
	result := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			result[i] = passwordCharset[0]
			continue
		}
		result[i] = passwordCharset[n.Int64()]
	}
	return string(result)
}
