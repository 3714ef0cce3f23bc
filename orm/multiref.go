package orm

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/iov-one/tokenswap/errors"
)

// MultiRef is a sorted set of references (primary keys). It is the value
// stored under a non unique index key.
type MultiRef struct {
	Refs [][]byte
}

// NewMultiRef creates a MultiRef with any number of initial references
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		err := m.Add(r)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts this reference in the multiref, sorted by order.
// Returns an error if already there
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	// append to end
	if i == len(m.Refs) {
		m.Refs = append(m.Refs, ref)
		return nil
	}
	// or insert in the middle
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref.
// Returns an error if not there
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	// splice it out
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// Size returns the number of references held.
func (m *MultiRef) Size() int {
	return len(m.Refs)
}

// returns (index, found) where found is true if
// the ref was in the set, index is where it is
// (or where it should be)
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	for i, r := range m.Refs {
		switch bytes.Compare(ref, r) {
		case -1:
			return i, false
		case 0:
			return i, true
		}
	}
	// hit the end, must append
	return len(m.Refs), false
}

func (m *MultiRef) Marshal() ([]byte, error) {
	return rlp.EncodeToBytes(m.Refs)
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	var refs [][]byte
	if err := rlp.DecodeBytes(raw, &refs); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	m.Refs = refs
	return nil
}
