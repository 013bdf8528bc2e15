package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeCandidate(desc string, err error, hits *[]string) Candidate {
	return Candidate{
		Description: desc,
		Timeout:     time.Millisecond,
		Wait: func(time.Duration) error {
			*hits = append(*hits, desc)
			return err
		},
	}
}

func TestFirstVisiblePicksFirstMatch(t *testing.T) {
	var hits []string
	idx, err := FirstVisible(zap.NewNop(), []Candidate{
		fakeCandidate("a", errors.New("not visible"), &hits),
		fakeCandidate("b", nil, &hits),
		fakeCandidate("c", nil, &hits),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	// probing stops at the first hit, later candidates are never tried
	assert.Equal(t, []string{"a", "b"}, hits)
}

func TestFirstVisibleExhausted(t *testing.T) {
	var hits []string
	_, err := FirstVisible(zap.NewNop(), []Candidate{
		fakeCandidate("a", errors.New("not visible"), &hits),
		fakeCandidate("b", errors.New("not visible"), &hits),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 selectors")
	assert.Equal(t, []string{"a", "b"}, hits)
}

func TestFirstVisibleDefaultTimeout(t *testing.T) {
	var got time.Duration
	_, err := FirstVisible(zap.NewNop(), []Candidate{{
		Description: "sem timeout",
		Wait: func(timeout time.Duration) error {
			got = timeout
			return nil
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, defaultProbeTimeout, got)
}
