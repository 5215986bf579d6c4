package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"sunny", "brave", "swift", "jolly", "mighty", "lucky", "merry", "zippy",
	"cosmic", "turbo", "bright", "clever", "bouncy", "daring", "gentle", "royal",
	"snappy", "wild", "perky", "noble",
}

var animals = []string{
	"fox", "panda", "tiger", "otter", "eagle", "wolf", "dolphin", "dragon",
	"koala", "falcon", "badger", "lynx", "puffin", "gecko", "bison", "heron",
	"moose", "raven", "seal", "yak",
}

const passwordChars = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateUsername returns a kid-friendly login name like "sunnyfox42".
func GenerateUsername() (string, error) {
	adj, err := pick(adjectives)
	if err != nil {
		return "", err
	}
	animal, err := pick(animals)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(90))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%d", adj, animal, n.Int64()+10), nil
}

// GeneratePassword returns a short random secret a kid can type. Ambiguous
// characters (0/O, 1/l/i) are excluded from the alphabet.
func GeneratePassword() (string, error) {
	out := make([]byte, 6)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return "", err
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}

func pick(words []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", err
	}
	return words[n.Int64()], nil
}
