package cryptox

import (
	"sync"
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = "pepper"
)

// SetPepperPath changes where the pepper is kept and forgets any pepper
// already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// Pepper returns the process pepper, loading it from the pepper file or
// generating it there on first use.
func Pepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}

	p, err := LoadOrGenerateSecret(pepperFile, keyLength)
	if err != nil {
		return "", err
	}
	pepper = p
	return pepper, nil
}
