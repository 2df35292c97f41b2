package mystore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Attendee struct {
	UID   string
	Email string
}

var (
	attendee1 = Attendee{UID: "123", Email: "marc@example.com"}
	attendee2 = Attendee{UID: "456", Email: "eva@example.com"}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	ps, cleanup, err := New[Attendee](c, "")
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := ps.Get(c, attendee1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = ps.Put(c, attendee2.UID, attendee2)
		assert.NoError(t, err)
		err = ps.Put(c, attendee1.UID, attendee1)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		p, found, err := ps.Get(c, attendee1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, attendee1, p)
	})

	t.Run("List in insertion order", func(t *testing.T) {
		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []Attendee{attendee2, attendee1}, all)
	})

	t.Run("Overwrite keeps position", func(t *testing.T) {
		err = ps.Put(c, attendee2.UID, Attendee{UID: "456", Email: "changed@example.com"})
		assert.NoError(t, err)

		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, "changed@example.com", all[0].Email)
	})

	t.Run("Transaction", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			_, found, err := ps.Get(c, "789")
			assert.NoError(t, err)
			assert.False(t, found)
			return ps.Put(c, "789", Attendee{UID: "789"})
		})
		assert.NoError(t, err)

		_, found, err := ps.Get(c, "789")
		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("Transaction error", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			return errors.New("abort")
		})
		assert.EqualError(t, err, "abort")
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Attendee", kindOf[Attendee]())
}
