package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Error(t, Register(reg))
}

func TestObserveStoreLabelsOutcome(t *testing.T) {
	before := testutil.CollectAndCount(StoreQueryDuration)

	var err error
	ObserveStore("memory", "metrics_test_ok", time.Now(), &err)
	err = errors.New("boom")
	ObserveStore("memory", "metrics_test_err", time.Now(), &err)

	assert.Equal(t, before+2, testutil.CollectAndCount(StoreQueryDuration))
}
