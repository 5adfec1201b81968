package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		expected             PaginationMeta
	}{
		{
			name: "first of several pages",
			page: 1, perPage: 10, total: 25,
			expected: PaginationMeta{CurrentPage: 1, PerPage: 10, Total: 25, TotalPages: 3, HasMore: true},
		},
		{
			name: "last page",
			page: 3, perPage: 10, total: 25,
			expected: PaginationMeta{CurrentPage: 3, PerPage: 10, Total: 25, TotalPages: 3, HasMore: false},
		},
		{
			name: "empty result",
			page: 1, perPage: 20, total: 0,
			expected: PaginationMeta{CurrentPage: 1, PerPage: 20},
		},
		{
			name: "zero page size does not divide",
			page: 1, perPage: 0, total: 5,
			expected: PaginationMeta{CurrentPage: 1, Total: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPaginationMeta(tt.page, tt.perPage, tt.total))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, st := range Statuses {
		assert.True(t, st.Valid(), st)
	}
	assert.False(t, Status("deleted").Valid())
	assert.False(t, Status("").Valid())
}

func TestInputValidate(t *testing.T) {
	assert.NoError(t, PostInput{Title: "NVDA earnings preview"}.Validate())
	assert.Error(t, PostInput{}.Validate())
	assert.Error(t, PostInput{Title: "x", Status: "gone"}.Validate())

	assert.NoError(t, SubscriberInput{Email: "trader@example.com"}.Validate())
	assert.Error(t, SubscriberInput{Email: "trader@example.com", Status: "maybe"}.Validate())
	assert.Error(t, SubscriberInput{}.Validate())

	assert.NoError(t, ContentInput{ContentType: "page", Title: "About"}.Validate())
	assert.Error(t, ContentInput{Title: "About"}.Validate())

	assert.NoError(t, VideoInput{Title: "Open", ContentType: VideoDaily, VideoURL: "https://cdn/v.mp4"}.Validate())
	assert.Error(t, VideoInput{Title: "Open"}.Validate())

	assert.NoError(t, IndicatorInput{Name: "Squeeze Pro", Price: 49}.Validate())
	assert.Error(t, IndicatorInput{Name: "Squeeze Pro", Price: -1}.Validate())
}
