package core

import (
	"fmt"
	"sync"
)

var (
	identifierMutex sync.Mutex
	owners          []interface{}
)

// IdentifierAquireNewID hands out the lowest free id and records its owner.
func IdentifierAquireNewID(owner interface{}) uint32 {
	identifierMutex.Lock()
	defer identifierMutex.Unlock()

	if len(owners) == 0 {
		owners = make([]interface{}, 100)
	}
	length := uint32(len(owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return i
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	owners = append(owners, owner)
	return uint32(len(owners)) - 1
}

func IdentifierReleaseID(id uint32) error {
	identifierMutex.Lock()
	defer identifierMutex.Unlock()

	if len(owners) == 0 {
		return fmt.Errorf("identifier release called before any id was acquired: %w", ErrInvalidID)
	}

	length := uint32(len(owners))
	if id >= length {
		return fmt.Errorf("id '%d' out of range (max=%d): %w", id, length, ErrInvalidID)
	}

	// Just zero out the entry, making it available for use.
	owners[id] = nil
	return nil
}
