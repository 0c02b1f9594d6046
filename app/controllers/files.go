package controllers

import "encoding/base64"

func encodeFile(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decodeFile(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
