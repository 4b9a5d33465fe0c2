package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"bjustcoin/internal/model"
)

func TestWalletRepository_CreateWhitelistEntryIdempotent(t *testing.T) {
	db := newTestDB(t, &model.WhitelistEntry{})
	repo := NewWalletRepository(db)
	ctx := context.Background()

	err := repo.CreateWhitelistEntry(ctx, 10, model.TokenTypeSeed)
	assert.NoError(t, err)

	// Same (user, token_type) again: a no-op, not an error and not a
	// second row.
	err = repo.CreateWhitelistEntry(ctx, 10, model.TokenTypeSeed)
	assert.NoError(t, err)

	entries, err := repo.ListWhitelistByUser(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, model.TokenTypeSeed, entries[0].TokenType)

	// A different token type for the same user is a distinct grant.
	err = repo.CreateWhitelistEntry(ctx, 10, model.TokenTypeIDO)
	assert.NoError(t, err)

	entries, err = repo.ListWhitelistByUser(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWalletRepository_DeleteWhitelistEntriesForUser(t *testing.T) {
	db := newTestDB(t, &model.WhitelistEntry{})
	repo := NewWalletRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateWhitelistEntry(ctx, 10, model.TokenTypeSeed))
	assert.NoError(t, repo.CreateWhitelistEntry(ctx, 10, model.TokenTypeIDO))
	assert.NoError(t, repo.CreateWhitelistEntry(ctx, 11, model.TokenTypeSeed))

	// Scoped revoke removes only the named token type.
	tokenType := model.TokenTypeSeed
	assert.NoError(t, repo.DeleteWhitelistEntriesForUser(ctx, 10, &tokenType))

	entries, err := repo.ListWhitelistByUser(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, model.TokenTypeIDO, entries[0].TokenType)

	// Unscoped revoke clears every grant for the user and leaves other
	// users untouched.
	assert.NoError(t, repo.DeleteWhitelistEntriesForUser(ctx, 10, nil))

	entries, err = repo.ListWhitelistByUser(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.ListWhitelistByUser(ctx, 11)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
