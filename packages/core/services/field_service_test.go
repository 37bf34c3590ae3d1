package services

import (
	"testing"

	"core/apperrors"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeersOfUngroupedField(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	field := createField(t, db, "Cancha 1", models.FormatF5)

	peers, err := svc.PeersOf(field.ID)
	require.NoError(t, err)

	// A field is always its own peer.
	assert.Equal(t, []uint{field.ID}, peers)
}

func TestPeersOfGroupedFieldsAreSymmetric(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	f7 := createField(t, db, "Grande", models.FormatF7)
	f5a := createField(t, db, "Mitad A", models.FormatF5)
	f5b := createField(t, db, "Mitad B", models.FormatF5)
	groupFields(t, db, "Grande y mitades", f7.ID, f5a.ID, f5b.ID)

	for _, id := range []uint{f7.ID, f5a.ID, f5b.ID} {
		peers, err := svc.PeersOf(id)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{f7.ID, f5a.ID, f5b.ID}, peers)
	}
}

func TestPeersOfIsOneHopOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	// A and B are each grouped with C but not with each other.
	a := createField(t, db, "A", models.FormatF5)
	b := createField(t, db, "B", models.FormatF5)
	c := createField(t, db, "C", models.FormatF7)
	groupFields(t, db, "AC", a.ID, c.ID)
	groupFields(t, db, "BC", b.ID, c.ID)

	peersA, err := svc.PeersOf(a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, c.ID}, peersA)
	assert.NotContains(t, peersA, b.ID)

	// C sees both groups.
	peersC, err := svc.PeersOf(c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID, c.ID}, peersC)
}

func TestPeersOfMany(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	a := createField(t, db, "A", models.FormatF5)
	b := createField(t, db, "B", models.FormatF5)
	groupFields(t, db, "AB", a.ID, b.ID)
	lone := createField(t, db, "Lone", models.FormatF5)

	peers, err := svc.PeersOfMany([]uint{a.ID, lone.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, peers[a.ID])
	assert.Equal(t, []uint{lone.ID}, peers[lone.ID])
}

func TestSetGroupMembersReplacesWholeSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	a := createField(t, db, "A", models.FormatF5)
	b := createField(t, db, "B", models.FormatF5)
	c := createField(t, db, "C", models.FormatF5)

	group, err := svc.CreateGroup(models.CreateFieldGroupRequest{Name: "G", FieldIDs: []uint{a.ID, b.ID}})
	require.NoError(t, err)
	require.Len(t, group.Members, 2)

	group, err = svc.SetGroupMembers(group.ID, []uint{c.ID})
	require.NoError(t, err)
	require.Len(t, group.Members, 1)
	assert.Equal(t, c.ID, group.Members[0].FieldID)

	// The replaced fields are no longer peers.
	peersA, err := svc.PeersOf(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, peersA)
}

func TestSetGroupMembersUnknownFieldRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	a := createField(t, db, "A", models.FormatF5)
	group, err := svc.CreateGroup(models.CreateFieldGroupRequest{Name: "G", FieldIDs: []uint{a.ID}})
	require.NoError(t, err)

	_, err = svc.SetGroupMembers(group.ID, []uint{a.ID, 9999})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// The prior membership survives the failed replace.
	group, err = svc.GetGroupByID(group.ID)
	require.NoError(t, err)
	require.Len(t, group.Members, 1)
	assert.Equal(t, a.ID, group.Members[0].FieldID)
}

func TestDeleteGroupRemovesMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	a := createField(t, db, "A", models.FormatF5)
	b := createField(t, db, "B", models.FormatF5)
	group, err := svc.CreateGroup(models.CreateFieldGroupRequest{Name: "G", FieldIDs: []uint{a.ID, b.ID}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(group.ID))

	peers, err := svc.PeersOf(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, peers)

	err = svc.DeleteGroup(group.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateField(t *testing.T) {
	db := newTestDB(t)
	svc := NewFieldService(db)

	field := createField(t, db, "A", models.FormatF5)

	updated, err := svc.UpdateField(field.ID, models.UpdateFieldRequest{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "A", updated.Name)

	_, err = svc.UpdateField(9999, models.UpdateFieldRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
