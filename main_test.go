package main

import (
	"testing"

	"github.com/jetsetilly/testfalcon/test"
)

func TestHeadless(t *testing.T) {
	test.ExpectEquality(t, headless(nil), false)
	test.ExpectEquality(t, headless([]string{"-audio", "48000"}), false)
	test.ExpectEquality(t, headless([]string{"-mute", "-headless"}), true)
	test.ExpectEquality(t, headless([]string{"--headless"}), true)
}
