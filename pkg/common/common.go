package common

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	var err error
	snowflakeNode, err = snowflake.NewNode(int64(rand.Intn(1023) + 1))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake based int64 id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake based string id
func UUID() string {
	return snowflakeNode.Generate().String()
}

// GetSecretSalt reads the password salt from env, with a fixed fallback
func GetSecretSalt() string {
	salt := os.Getenv("ELITESUPPS_SECRET_SALT")
	if salt == "" {
		salt = "elitesupps-secret"
	}
	return salt
}

// Sha256HashWithSalt hash src with salt
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IsEmptyOrNA checks commonly used empty markers
func IsEmptyOrNA(val string) bool {
	val = strings.TrimSpace(val)
	return val == "" || val == "N/A"
}
