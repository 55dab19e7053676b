package storage

import "errors"

// ErrNotFound is returned by Retrieve when the named blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Interface defines the contract for blob storage operations
type Interface interface {
	Store(name string, data []byte) error
	Retrieve(name string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(name string) error
}
