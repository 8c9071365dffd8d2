package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_Merged_DeduplicatesAcrossBuckets(t *testing.T) {
	l := &Listing{
		Showcase: []Project{
			{ID: "p1", Title: "Agent Arena", Bucket: "showcase"},
			{ID: "p2", Title: "Prompt Garden", Bucket: "showcase"},
		},
		Playground: []Project{
			{ID: "p2", Title: "Prompt Garden (wip)", Bucket: "playground"},
			{ID: "p3", Title: "Loop Visualizer", Bucket: "playground"},
		},
	}

	merged := l.Merged()
	require.Len(t, merged, 3)
	assert.Equal(t, "p1", merged[0].ID)
	assert.Equal(t, "p2", merged[1].ID)
	assert.Equal(t, "p3", merged[2].ID)
	// The showcase copy wins when a project sits in both buckets.
	assert.Equal(t, "Prompt Garden", merged[1].Title)
}

func TestListing_Merged_SkipsBlankAndRepeatedIDs(t *testing.T) {
	l := &Listing{
		Showcase:   []Project{{ID: ""}, {ID: "p1"}, {ID: "p1"}},
		Playground: []Project{{ID: ""}},
	}

	merged := l.Merged()
	require.Len(t, merged, 1)
	assert.Equal(t, "p1", merged[0].ID)
}

func TestListing_Merged_EmptyListing(t *testing.T) {
	assert.Empty(t, (&Listing{}).Merged())
}
