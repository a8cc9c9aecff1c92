package main

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadMonthsKeepsOrder(t *testing.T) {
	months := []string{"01", "02", "03", "04", "05"}
	var inFlight, peak atomic.Int32

	rows, err := loadMonths(context.Background(), zap.NewNop(), 2, months, func(month string) ([]int, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		m, _ := strconv.Atoi(month)
		// later months finish first
		time.Sleep(time.Duration(6-m) * time.Millisecond)
		return []int{m, m * 10}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 10, 2, 20, 3, 30, 4, 40, 5, 50}, rows)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestLoadMonthsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := loadMonths(context.Background(), zap.NewNop(), 1, []string{"01", "02"}, func(month string) ([]int, error) {
		if month == "02" {
			return nil, boom
		}
		return []int{1}, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "month 02")
}

func TestLoadMonthsEmpty(t *testing.T) {
	rows, err := loadMonths(context.Background(), zap.NewNop(), 4, nil, func(string) ([]int, error) {
		t.Fatal("load called with no months")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
