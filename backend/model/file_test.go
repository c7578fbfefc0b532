package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertFile_And_ListOrdering(t *testing.T) {
	teardown := setupTestDB(t)
	defer teardown()

	owner, err := CreateUser("dave", "T1", "hash")
	assert.NoError(t, err)

	first, err := InsertFile("a.stl", "/vault/user_1/a.stl", owner.ID)
	assert.NoError(t, err)
	second, err := InsertFile("b.stl", "/vault/user_1/b.stl", owner.ID)
	assert.NoError(t, err)
	third, err := InsertFile("c.stl", "/vault/user_1/c.stl", owner.ID)
	assert.NoError(t, err)

	files, err := ListFilesByOwner(owner.ID)
	assert.NoError(t, err)
	assert.Len(t, files, 3)

	// Newest first, insertion order as the tiebreak within the same second.
	assert.Equal(t, third.ID, files[0].ID)
	assert.Equal(t, second.ID, files[1].ID)
	assert.Equal(t, first.ID, files[2].ID)
}

func TestListFilesByOwner_Empty(t *testing.T) {
	teardown := setupTestDB(t)
	defer teardown()

	owner, err := CreateUser("erin", "T1", "hash")
	assert.NoError(t, err)

	files, err := ListFilesByOwner(owner.ID)
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestGetFileForOwner_Scoping(t *testing.T) {
	teardown := setupTestDB(t)
	defer teardown()

	ownerA, err := CreateUser("frank", "T1", "hash")
	assert.NoError(t, err)
	ownerB, err := CreateUser("grace", "T2", "hash")
	assert.NoError(t, err)

	file, err := InsertFile("part.stl", "/vault/user_a/part.stl", ownerA.ID)
	assert.NoError(t, err)

	got, err := GetFileForOwner(file.ID, ownerA.ID)
	assert.NoError(t, err)
	assert.Equal(t, "part.stl", got.Filename)

	// Another owner's file resolves exactly like a missing one.
	_, err = GetFileForOwner(file.ID, ownerB.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = GetFileForOwner(999999, ownerA.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
