package jwtx

import (
	"crypto/ed25519"
	"slices"
	"sync"
)

// KeySet holds the public keys accepted for verification, keyed by kid.
// Safe for concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// Add registers pub under kid, replacing any previous key with that kid.
func (k *KeySet) Add(kid string, pub ed25519.PublicKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
}

func (k *KeySet) Remove(kid string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pub, kid)
}

func (k *KeySet) Get(kid string) (ed25519.PublicKey, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pub, ok := k.pub[kid]
	return pub, ok
}

// KIDs returns the registered key ids in sorted order.
func (k *KeySet) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.pub))
	for kid := range k.pub {
		out = append(out, kid)
	}
	slices.Sort(out)
	return out
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}
