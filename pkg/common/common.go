package common

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

const defaultSecretSalt = "5f8923c9-67f7-8c05-aa19-1e6d4a5b3c2f"

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(rand.New(rand.NewSource(time.Now().UnixNano())).Int63n(1023))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a time-ordered unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the base58 form of a snowflake identifier.
func UUID() string {
	return snowflakeNode.Generate().Base58()
}

// GetSecretSalt returns the password salt, overridable by environment.
func GetSecretSalt() string {
	salt := os.Getenv("GREENHAVEN_SECRET_SALT")
	if salt != "" {
		return salt
	}
	return defaultSecretSalt
}

// Sha256HashWithSalt hashes src with the given salt appended.
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}
