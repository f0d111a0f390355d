package app

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// hashChunkSize bounds how much of a file is held in memory while hashing.
const hashChunkSize = 4096

// HashFile streams the file at path through MD5 and returns the lowercase
// hex digest. Open and read failures are returned as *ReadError.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
