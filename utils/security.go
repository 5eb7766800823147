// boatd/utils/security.go
package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminSessionCookie is the name of the signed admin session cookie.
const AdminSessionCookie = "boatd_admin"

// SecureCompare reports whether two strings are equal in constant time.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NewAdminSession mints a signed session value of the form
// "<expiry-unix>.<nonce>.<mac>". The MAC is keyed on the configured admin
// token, so rotating the token invalidates all outstanding sessions.
func NewAdminSession(adminToken string, ttl time.Duration) string {
	expiry := strconv.FormatInt(GetTime().Add(ttl).Unix(), 10)
	nonce := uuid.NewString()
	return expiry + "." + nonce + "." + sessionMAC(adminToken, expiry, nonce)
}

// VerifyAdminSession checks the signature and expiry of a session value.
func VerifyAdminSession(adminToken, value string) bool {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return false
	}
	expiry, nonce, mac := parts[0], parts[1], parts[2]
	if !SecureCompare(mac, sessionMAC(adminToken, expiry, nonce)) {
		return false
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return false
	}
	return GetTime().Unix() <= unix
}

func sessionMAC(adminToken, expiry, nonce string) string {
	mac := hmac.New(sha256.New, []byte("boatd-session:"+adminToken))
	fmt.Fprintf(mac, "%s.%s", expiry, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}
