package library

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pustakahq/pustakactl/internal/store"
)

// Member is one registered student in the directory. Members are never
// deleted; loans reference them by id and keep a name snapshot.
type Member struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	NIS   string `json:"nis"`
}

func (m Member) RecordID() int { return m.ID }

// Directory provides registration and listing of members.
type Directory struct {
	members *store.Store[Member]
}

// NewDirectory creates a directory over the given member store.
func NewDirectory(members *store.Store[Member]) *Directory {
	return &Directory{members: members}
}

// Add registers a new member. Every field is required and the NIS must be
// unique across the whole directory (case-sensitive exact match).
func (d *Directory) Add(name, class, nis string) (Member, error) {
	if name == "" || class == "" || nis == "" {
		return Member{}, fmt.Errorf("name, class and NIS are all required: %w", ErrValidation)
	}

	var added Member
	err := d.members.Update(func(members []Member) ([]Member, error) {
		for _, m := range members {
			if m.NIS == nis {
				return nil, fmt.Errorf("NIS %s: %w", nis, ErrDuplicate)
			}
		}
		added = Member{
			ID:    store.NextID(members),
			Name:  name,
			Class: class,
			NIS:   nis,
		}
		return append(members, added), nil
	})
	if err != nil {
		return Member{}, err
	}
	return added, nil
}

// Members returns the directory in insertion order.
func (d *Directory) Members() (iter.Seq[Member], error) {
	members, err := d.members.Load()
	if err != nil {
		return nil, err
	}
	return slices.Values(members), nil
}

// Get returns the member with the given id.
func (d *Directory) Get(id int) (Member, error) {
	members, err := d.members.Load()
	if err != nil {
		return Member{}, err
	}
	member, ok := store.FindByID(members, id)
	if !ok {
		return Member{}, fmt.Errorf("member %d: %w", id, ErrNotFound)
	}
	return member, nil
}
