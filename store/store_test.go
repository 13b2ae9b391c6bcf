package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-webapp/models"
)

func TestCreateGetDelete(t *testing.T) {
	drafts := New()
	inv := models.NewDraft("user-1")

	id := drafts.Create(inv)
	require.NotEmpty(t, id)
	assert.Same(t, inv, drafts.Get(id))
	assert.Equal(t, 1, drafts.Len())

	drafts.Delete(id)
	assert.Nil(t, drafts.Get(id))
	assert.Zero(t, drafts.Len())

	// deleting again is a no-op
	drafts.Delete(id)
}

func TestGetOwned(t *testing.T) {
	drafts := New()
	id := drafts.Create(models.NewDraft("user-1"))

	assert.NotNil(t, drafts.GetOwned(id, "user-1"))
	assert.Nil(t, drafts.GetOwned(id, "someone-else"))
	assert.Nil(t, drafts.GetOwned("missing", "user-1"))
}

func TestDraftsAreIndependent(t *testing.T) {
	drafts := New()
	a := drafts.Create(models.NewDraft("user-1"))
	b := drafts.Create(models.NewDraft("user-1"))
	require.NotEqual(t, a, b)

	drafts.Get(a).Notes = "only a"
	assert.Empty(t, drafts.Get(b).Notes)
}
