package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanclubhq/fanclub/internal/domain"
)

func TestNetworkService_ListChapters(t *testing.T) {
	repo := new(mockChapterRepository)
	svc := NewNetworkService(repo, newStubCache(), newTestLogger())

	chapters := []domain.Chapter{
		{ID: "ch-1", Name: "Malta Chapter", City: "Valletta", Country: "MT", MemberCount: 120},
		{ID: "ch-2", Name: "Berlin Chapter", City: "Berlin", Country: "DE", MemberCount: 85},
	}
	repo.On("List", mock.Anything).Return(chapters, nil).Once()

	got, err := svc.ListChapters(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Malta Chapter", got[0].Name)

	// Second call is served from the cache.
	got, err = svc.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestNetworkService_ListChapters_RepoFailure(t *testing.T) {
	repo := new(mockChapterRepository)
	svc := NewNetworkService(repo, newStubCache(), newTestLogger())

	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ListChapters(context.Background())

	assert.Error(t, err)
}
