package common

import "testing"

func TestWipeByteArray(t *testing.T) {
	buf := []byte("s3cret!")
	WipeByteArray(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not wiped: %v", i, buf)
		}
	}
}

func TestWipeByteArray_Nil(t *testing.T) {
	WipeByteArray(nil)
}
